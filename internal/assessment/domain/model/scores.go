package model

import (
	"github.com/shopspring/decimal"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/valueobject"
)

// BureauScore is the immutable creditworthiness record fetched from the
// bureau for one applicant. It is cached with a fixed TTL keyed by CPF.
type BureauScore struct {
	CPF             string                     `json:"cpf"`
	Score           int                        `json:"score"`
	Assessment      string                     `json:"assessment"`
	HasRestrictions bool                       `json:"hasRestrictions"`
	PaymentHistory  valueobject.PaymentHistory `json:"paymentHistory"`
	MonthlyDebts    decimal.Decimal            `json:"monthlyDebts"`
}

// AntiFraudScore is the immutable fraud-risk record fetched per application.
// It is considered volatile and is never cached.
type AntiFraudScore struct {
	ApplicationID  string                          `json:"applicationId"`
	FraudScore     int                             `json:"fraudScore"`
	Recommendation valueobject.FraudRecommendation `json:"recommendation"`
}
