package report

import (
	"time"

	"github.com/shivaccounts/backend/internal/domain/shared"
)

// Period is an inclusive date range [From, To] that scopes a report
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// NewPeriod validates and builds a report period
func NewPeriod(from, to time.Time) (Period, error) {
	if from.IsZero() || to.IsZero() {
		return Period{}, shared.NewDomainError(shared.CodeInvalidRange, "Report range requires both from and to dates")
	}
	if from.After(to) {
		return Period{}, shared.NewDomainError(shared.CodeInvalidRange, "Report range start must not be after its end")
	}
	return Period{From: from, To: to}, nil
}

// Contains reports whether t falls inside the period, both ends inclusive
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}
