package dto

import "time"

type AccountResponseDTO struct {
	TotalInvested         float64    `json:"total_invested" example:"10000"`
	CurrentPortfolioValue float64    `json:"current_portfolio_value" example:"11250.5"`
	DailyProfitPercentage float64    `json:"daily_profit_percentage" example:"1.2"`
	PortfolioActive       bool       `json:"portfolio_active" example:"true"`
	ActivationDate        *time.Time `json:"activation_date,omitempty"`
	LastUpdate            time.Time  `json:"last_update"`
}

type ActivateAccountRequestDTO struct {
	InitialInvestment float64 `json:"initial_investment" example:"1000"`
}

type DepositRequestDTO struct {
	Currency string  `json:"currency" example:"BTC"`
	Amount   float64 `json:"amount" example:"500"`
}

type DepositAddressDTO struct {
	Currency string `json:"currency" example:"BTC"`
	Network  string `json:"network" example:"Bitcoin Network"`
	Address  string `json:"address" example:"bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh"`
}

type TransactionResponseDTO struct {
	Type        string    `json:"type" example:"deposit"`
	Amount      float64   `json:"amount" example:"500"`
	Currency    string    `json:"currency" example:"BTC"`
	Status      string    `json:"status" example:"pending"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
}
