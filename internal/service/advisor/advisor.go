// Package advisor turns computed KPI snapshots into categorized advice.
// Two interchangeable implementations exist: a deterministic rule evaluator
// and a Gemini-backed delegate. Selection happens once at wiring time via
// ADVISOR_MODE, never by conditional branching in callers.
package advisor

import (
	"context"

	"github.com/mamadbah2/agripulse/internal/domain/models"
)

// Advisor is the advisory capability. Implementations degrade internally:
// no error ever crosses this boundary, failures surface as synthetic advice
// entries. An empty list means "all clear" and the caller substitutes the
// all-clear message.
type Advisor interface {
	Advise(ctx context.Context, snap models.KPISnapshot) []models.AdviceMessage
}
