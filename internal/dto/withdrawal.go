package dto

import "time"

type WithdrawalLimitResponseDTO struct {
	CanWithdraw    bool    `json:"can_withdraw" example:"true"`
	TierPercentage int     `json:"tier_percentage" example:"35"`
	MaxAmount      float64 `json:"max_amount" example:"3500"`
	MonthsActive   int     `json:"months_active" example:"6"`
	Reason         string  `json:"reason,omitempty"`
}

// WithdrawalRequestDTO carries the raw proposal. Amount stays a string so
// the validator can report a malformed value instead of a decode failure.
type WithdrawalRequestDTO struct {
	Email                string `json:"email" example:"user@example.com"`
	Currency             string `json:"currency" example:"USDT"`
	WalletAddress        string `json:"wallet_address" example:"TQn9Y2khEsLJW1ChVWFMSMeRDow5ANLG7Q"`
	ConfirmWalletAddress string `json:"confirm_wallet_address" example:"TQn9Y2khEsLJW1ChVWFMSMeRDow5ANLG7Q"`
	Amount               string `json:"amount" example:"500"`
	Network              string `json:"network,omitempty" example:"Tron Network (TRC-20)"`
	IdempotencyKey       string `json:"idempotency_key,omitempty"`
}

type WithdrawalResponseDTO struct {
	ID          string    `json:"id" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Amount      float64   `json:"amount" example:"500"`
	Currency    string    `json:"currency" example:"USDT"`
	Network     string    `json:"network" example:"Tron Network (TRC-20)"`
	Status      string    `json:"status" example:"pending"`
	RequestDate time.Time `json:"request_date"`
}

type ValidationErrorDTO struct {
	Kind    string  `json:"kind" example:"AmountExceedsLimit"`
	Field   string  `json:"field,omitempty" example:"amount"`
	Message string  `json:"message"`
	Limit   float64 `json:"limit,omitempty" example:"3500"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status" example:"processing"`
}
