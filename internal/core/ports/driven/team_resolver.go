package driven

import (
	"context"

	"github.com/pagelift/pagelift-cli/internal/core/domain"
)

// TeamResolver answers the mid-flight "destination requires a team scope"
// condition. The launcher suspends the active step, presents the available
// teams through the resolver, and resumes with the selection.
//
// Implementations are interactive (a terminal picker) or fixed (tests).
// A nil resolver degrades team-required destinations to a failure with a
// fixed explanatory message.
type TeamResolver interface {
	// Resolve presents the team list and returns the user's choice.
	Resolve(ctx context.Context, list domain.TeamList) (domain.TeamSelection, error)
}
