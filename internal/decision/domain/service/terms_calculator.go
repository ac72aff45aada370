package service

import (
	"github.com/shopspring/decimal"

	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// Term length thresholds. Larger loans get more installments so the
// individual installment stays affordable.
var (
	mediumLoanThreshold = decimal.NewFromInt(10000)
	largeLoanThreshold  = decimal.NewFromInt(25000)
)

const (
	shortTermInstallments  = 12
	mediumTermInstallments = 24
	longTermInstallments   = 36
)

// LoanTermsCalculator derives the final loan terms from the approved amount
// and the annual interest rate recommended by the assessment.
type LoanTermsCalculator struct{}

func NewLoanTermsCalculator() *LoanTermsCalculator {
	return &LoanTermsCalculator{}
}

// Calculate produces the loan terms for an approved amount at the given
// annual rate. The number of installments is tiered by amount and the
// installment follows the standard annuity formula with a monthly rate.
func (c *LoanTermsCalculator) Calculate(approvedAmount, annualRate decimal.Decimal) events.LoanTerms {
	installments := installmentsFor(approvedAmount)
	monthlyRate := annualRate.DivRound(decimal.NewFromInt(12), 10)
	installmentAmount := annuityInstallment(approvedAmount, monthlyRate, installments)

	return events.LoanTerms{
		ApprovedAmount:       approvedAmount,
		InterestRate:         annualRate,
		NumberOfInstallments: installments,
		InstallmentAmount:    installmentAmount,
	}
}

func installmentsFor(amount decimal.Decimal) int {
	switch {
	case amount.GreaterThanOrEqual(largeLoanThreshold):
		return longTermInstallments
	case amount.GreaterThanOrEqual(mediumLoanThreshold):
		return mediumTermInstallments
	default:
		return shortTermInstallments
	}
}

// annuityInstallment computes P*i*(1+i)^n / ((1+i)^n - 1) rounded to cents.
// A zero monthly rate degenerates the denominator to zero, in which case the
// installment is simply the principal split evenly.
func annuityInstallment(principal, monthlyRate decimal.Decimal, installments int) decimal.Decimal {
	n := decimal.NewFromInt(int64(installments))

	factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(n)
	denominator := factor.Sub(decimal.NewFromInt(1))
	if denominator.IsZero() {
		return principal.DivRound(n, 2)
	}

	numerator := principal.Mul(monthlyRate).Mul(factor)
	return numerator.DivRound(denominator, 2)
}
