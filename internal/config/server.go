package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	// Monthly subscription fee backers and sellers pay out-of-band, and the
	// operator cash tag that receives it.
	SubscriptionPriceUSD string `env:"SUBSCRIPTION_PRICE_USD" envDefault:"1.99"`
	OwnerCashTag         string `env:"OWNER_CASHTAG" envDefault:"$unclehomie75"`

	// Pending stake reservations older than this are released back to the
	// session's share pool. 0 disables the expiry sweeper.
	StakeExpiryMins int `env:"STAKE_EXPIRY_MINUTES" envDefault:"0"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
