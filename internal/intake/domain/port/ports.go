package port

import (
	"context"

	"github.com/gustavodinniz/loan-flow/pkg/events"
)

// CPFValidation is the degraded-capable result of a CPF check. A check that
// could not be completed reports an invalid or irregular CPF with a message
// explaining why; it never surfaces as an error.
type CPFValidation struct {
	Valid   bool
	Regular bool
	Message string
}

// AccountValidation reports whether the applicant holds an active account.
type AccountValidation struct {
	Active  bool
	Message string
}

// RestrictionCheck reports whether the applicant carries internal
// restrictions. An unreachable checker reports restricted.
type RestrictionCheck struct {
	Restricted bool
	Message    string
}

// CPFValidator validates the applicant's CPF against the external registry.
type CPFValidator interface {
	ValidateCPF(ctx context.Context, cpf string) CPFValidation
}

// AccountChecker verifies the applicant has an active account.
type AccountChecker interface {
	CheckAccount(ctx context.Context, cpf string) AccountValidation
}

// RestrictionChecker looks up internal restrictions for the applicant.
type RestrictionChecker interface {
	CheckRestrictions(ctx context.Context, cpf string) RestrictionCheck
}

// EventPublisher publishes the intake event that starts the pipeline.
type EventPublisher interface {
	PublishApplicationReceived(ctx context.Context, evt events.LoanApplicationReceived) error
}
