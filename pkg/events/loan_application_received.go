package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanApplicationReceived is published by the intake service once an
// application passes intake validation. It is the input of the credit
// assessment stage.
type LoanApplicationReceived struct {
	ApplicationID        string          `json:"applicationId"`
	CPF                  string          `json:"cpf"`
	DateOfBirth          time.Time       `json:"dateOfBirth"`
	AmountRequested      decimal.Decimal `json:"amountRequested"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	MonthlyIncome        decimal.Decimal `json:"monthlyIncome"`
	EventTimestamp       time.Time       `json:"eventTimestamp"`
}
