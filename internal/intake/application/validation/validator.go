package validation

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/gustavodinniz/loan-flow/internal/intake/domain/port"
)

// Result aggregates the three external checks for one applicant.
type Result struct {
	CPF          port.CPFValidation
	Account      port.AccountValidation
	Restrictions port.RestrictionCheck
}

// Failures lists the checks that block submission, in a stable order.
func (r Result) Failures() []string {
	var failures []string
	if !r.CPF.Valid {
		failures = append(failures, "CPF is invalid: "+r.CPF.Message)
	} else if !r.CPF.Regular {
		failures = append(failures, "CPF is not regular: "+r.CPF.Message)
	}
	if !r.Account.Active {
		failures = append(failures, "Account is not active: "+r.Account.Message)
	}
	if r.Restrictions.Restricted {
		failures = append(failures, "Applicant has internal restrictions: "+r.Restrictions.Message)
	}
	return failures
}

// ExternalValidator runs the three external checks concurrently and waits
// for all of them. The checks themselves degrade on failure instead of
// erroring, so the barrier always completes with a full Result.
type ExternalValidator struct {
	cpf          port.CPFValidator
	accounts     port.AccountChecker
	restrictions port.RestrictionChecker
	logger       *slog.Logger
}

func NewExternalValidator(
	cpf port.CPFValidator,
	accounts port.AccountChecker,
	restrictions port.RestrictionChecker,
	logger *slog.Logger,
) *ExternalValidator {
	return &ExternalValidator{
		cpf:          cpf,
		accounts:     accounts,
		restrictions: restrictions,
		logger:       logger,
	}
}

// Validate fans out the checks and gathers their results.
func (v *ExternalValidator) Validate(ctx context.Context, cpf string) Result {
	var result Result

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.CPF = v.cpf.ValidateCPF(ctx, cpf)
		return nil
	})
	g.Go(func() error {
		result.Account = v.accounts.CheckAccount(ctx, cpf)
		return nil
	})
	g.Go(func() error {
		result.Restrictions = v.restrictions.CheckRestrictions(ctx, cpf)
		return nil
	})

	// Tasks never return errors, so Wait is purely a completion barrier.
	_ = g.Wait()

	v.logger.DebugContext(ctx, "external validation completed",
		"cpf_valid", result.CPF.Valid,
		"cpf_regular", result.CPF.Regular,
		"account_active", result.Account.Active,
		"restricted", result.Restrictions.Restricted,
	)
	return result
}
