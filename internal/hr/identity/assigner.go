// Package identity replaces placeholder employee identities with
// deterministic names and emails. The mapping depends only on the employee
// id and gender bucket, so re-running a backfill is replayable and never
// touches rows that were already customized.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrpulse/hrpulse-backend/internal/hr/domain"
	"github.com/hrpulse/hrpulse-backend/internal/hr/store"
	"github.com/hrpulse/hrpulse-backend/pkg/logger"
)

// PlaceholderFirstName is the stand-in the raw dataset ships for every
// employee. Rows carrying it (or an empty first name) are the only ones the
// backfill rewrites.
const PlaceholderFirstName = "Employee"

// Assigner performs the identity backfill
type Assigner struct {
	store       store.Store
	emailDomain string
	logger      *logger.Logger
}

// NewAssigner creates an identity assigner
func NewAssigner(s store.Store, emailDomain string, log *logger.Logger) *Assigner {
	return &Assigner{
		store:       s,
		emailDomain: emailDomain,
		logger:      log.WithComponent("identity"),
	}
}

// Result summarizes one backfill pass
type Result struct {
	Rewritten int `json:"rewritten"`
	Skipped   int `json:"skipped"`
}

// IsPlaceholder reports whether the employee still carries a placeholder
// identity.
func IsPlaceholder(e domain.Employee) bool {
	return e.FirstName == "" || e.FirstName == PlaceholderFirstName
}

// NameFor returns the deterministic first and last name for an employee id
// and gender bucket. Index is ((id-1) mod pool size) into the fixed pools,
// spreading identities across the pool without external randomness.
func NameFor(id int, bucket domain.GenderBucket) (string, string) {
	var pool []string
	switch bucket {
	case domain.GenderFemale:
		pool = femaleFirstNames
	case domain.GenderMale:
		pool = maleFirstNames
	default:
		pool = neutralFirstNames
	}

	first := pool[(id-1)%len(pool)]
	last := lastNames[(id-1)%len(lastNames)]
	return first, last
}

// EmailFor derives the employee email. The id suffix keeps addresses unique
// even when two employees map to the same name pair.
func (a *Assigner) EmailFor(firstName, lastName string, id int) string {
	local := fmt.Sprintf("%s.%s%d", alphanumeric(firstName), alphanumeric(lastName), id)
	return strings.ToLower(local) + "@" + a.emailDomain
}

// Backfill rewrites every placeholder identity in the store. Already
// customized rows are counted as skipped and left untouched.
func (a *Assigner) Backfill(ctx context.Context) (Result, error) {
	employees, err := a.store.ListEmployees(ctx)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, emp := range employees {
		if !IsPlaceholder(emp) {
			result.Skipped++
			continue
		}

		first, last := NameFor(emp.ID, domain.BucketForGender(emp.Gender))
		email := a.EmailFor(first, last, emp.ID)

		if err := a.store.UpdateEmployeeIdentity(ctx, emp.ID, first, last, email); err != nil {
			return result, fmt.Errorf("backfill employee %d: %w", emp.ID, err)
		}
		result.Rewritten++
	}

	a.logger.Info().
		Int("rewritten", result.Rewritten).
		Int("skipped", result.Skipped).
		Msg("identity backfill complete")

	return result, nil
}

func alphanumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
