package events

import "github.com/shopspring/decimal"

// LoanTerms describes the final terms offered on an approved loan.
type LoanTerms struct {
	ApprovedAmount       decimal.Decimal `json:"approvedAmount"`
	InterestRate         decimal.Decimal `json:"interestRate"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	InstallmentAmount    decimal.Decimal `json:"installmentAmount"`
}

// LoanDecisionMade is the terminal event of the pipeline. Terms is nil
// unless the decision is APPROVED.
type LoanDecisionMade struct {
	Envelope

	ApplicationID string     `json:"applicationId"`
	CPF           string     `json:"cpf"`
	Decision      string     `json:"decision"`
	Reason        string     `json:"reason"`
	Terms         *LoanTerms `json:"terms,omitempty"`
}
