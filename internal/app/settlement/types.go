package settlement

type PayoutLine struct {
	PayoutID     string `json:"payout_id"`
	StakeID      string `json:"stake_id"`
	BuyerID      string `json:"buyer_id"`
	BuyerName    string `json:"buyer_name"`
	BuyerCashTag string `json:"buyer_cash_tag"`
	AmountOwed   string `json:"amount_owed"`
}

type CompleteResponse struct {
	SessionID string       `json:"session_id"`
	CashOut   string       `json:"cash_out"`
	Profit    string       `json:"profit"`
	Payouts   []PayoutLine `json:"payouts"`
}
