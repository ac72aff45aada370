package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gustavodinniz/loan-flow/internal/assessment/domain/model"
	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// ---------------------------------------------------------------------------
// Risk tiering – score-band policies
// ---------------------------------------------------------------------------

// ErrNoTierForScore indicates a configuration fault: the registered tiers do
// not cover the given score. Callers must treat this as fatal; silently
// picking a wrong tier has financial impact.
var ErrNoTierForScore = errors.New("no risk tier registered for score")

// RiskTier is a score-band policy: it claims a range of bureau scores and
// sets the recommended limit and rate on the assessment result.
type RiskTier interface {
	// AppliesTo reports whether this tier claims the given bureau score.
	AppliesTo(score int) bool
	// Assess applies the tier's limit/rate policy to the result.
	Assess(app events.LoanApplicationReceived, bureau model.BureauScore, result *model.AssessmentResult)
}

// DefaultTiers returns the production tier registry. The bands are
// non-overlapping and together cover every score in [0, 999]; registration
// order is the selection order.
func DefaultTiers() []RiskTier {
	return []RiskTier{
		veryHighRiskTier{},
		highRiskTier{},
		standardRiskTier{},
		lowRiskTier{},
	}
}

// SelectTier returns the first registered tier claiming the score.
func SelectTier(tiers []RiskTier, score int) (RiskTier, error) {
	for _, tier := range tiers {
		if tier.AppliesTo(score) {
			return tier, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNoTierForScore, score)
}

// capLimit returns the smallest of the income-based limit, the tier cap, and
// the requested amount.
func capLimit(income decimal.Decimal, multiplier, cap, requested decimal.Decimal) decimal.Decimal {
	limit := income.Mul(multiplier)
	if limit.GreaterThan(cap) {
		limit = cap
	}
	if limit.GreaterThan(requested) {
		limit = requested
	}
	return limit
}

// veryHighRiskTier: score < 300. Automatic rejection with zero terms, even
// when a caller reaches it with a result the rule chain let through.
type veryHighRiskTier struct{}

func (veryHighRiskTier) AppliesTo(score int) bool {
	return score < 300
}

func (veryHighRiskTier) Assess(_ events.LoanApplicationReceived, bureau model.BureauScore, result *model.AssessmentResult) {
	result.Reject(fmt.Sprintf("Credit score too low (%d). Automatic rejection.", bureau.Score))
}

// highRiskTier: 300 <= score <= 500.
type highRiskTier struct{}

var (
	highRiskCap            = decimal.RequireFromString("1000000.00")
	highRiskMultiplier     = decimal.RequireFromString("1.5")
	highRiskRate           = decimal.RequireFromString("0.18")
	minAcceptableLoanRatio = decimal.RequireFromString("0.5")
)

func (highRiskTier) AppliesTo(score int) bool {
	return score >= 300 && score < 501
}

func (highRiskTier) Assess(app events.LoanApplicationReceived, _ model.BureauScore, result *model.AssessmentResult) {
	result.AppendJustification("High risk profile identified, conditions adjusted.")
	result.MarkAdjusted()

	limit := capLimit(app.MonthlyIncome, highRiskMultiplier, highRiskCap, app.AmountRequested)

	minimumOffer := app.AmountRequested.Mul(minAcceptableLoanRatio)
	if limit.LessThan(minimumOffer) {
		result.Reject("Calculated limit too low for high-risk profile.")
		return
	}

	result.SetRecommendedTerms(limit.RoundBank(2), highRiskRate.RoundBank(4))
	if limit.LessThan(app.AmountRequested) {
		result.AppendJustification("Recommended limit significantly adjusted.")
	}
}

// standardRiskTier: 501 <= score <= 699.
type standardRiskTier struct{}

var (
	standardRiskCap        = decimal.RequireFromString("5000000.00")
	standardRiskMultiplier = decimal.RequireFromString("2.5")
	standardRiskRate       = decimal.RequireFromString("0.12")
)

func (standardRiskTier) AppliesTo(score int) bool {
	return score >= 501 && score < 700
}

func (standardRiskTier) Assess(app events.LoanApplicationReceived, _ model.BureauScore, result *model.AssessmentResult) {
	result.AppendJustification("Standard risk profile identified.")

	limit := capLimit(app.MonthlyIncome, standardRiskMultiplier, standardRiskCap, app.AmountRequested)
	result.SetRecommendedTerms(limit.RoundBank(2), standardRiskRate.RoundBank(4))

	if limit.LessThan(app.AmountRequested) {
		result.AppendJustification("Recommended limit adjusted due to income/cap/risk profile.")
	}
}

// lowRiskTier: score >= 700.
type lowRiskTier struct{}

var (
	lowRiskCap        = decimal.RequireFromString("5000000.00")
	lowRiskMultiplier = decimal.RequireFromString("4.5")
	lowRiskRate       = decimal.RequireFromString("0.08")
)

func (lowRiskTier) AppliesTo(score int) bool {
	return score >= 700
}

func (lowRiskTier) Assess(app events.LoanApplicationReceived, _ model.BureauScore, result *model.AssessmentResult) {
	result.AppendJustification("Low risk profile identified.")

	limit := capLimit(app.MonthlyIncome, lowRiskMultiplier, lowRiskCap, app.AmountRequested)
	result.SetRecommendedTerms(limit.RoundBank(2), lowRiskRate.RoundBank(4))

	if limit.LessThan(app.AmountRequested) {
		result.AppendJustification("Recommended limit adjusted due to income/cap.")
	}
}
