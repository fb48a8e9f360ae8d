package board

import (
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
)

// Resolver maps marketplace application IDs to destination boards. The table
// is fixed at construction and read-only afterwards, so lookups are safe from
// concurrent request handlers.
type Resolver struct {
	targets map[string]domain.BoardTarget
}

// NewResolver builds a resolver over the given application → board table.
// Pass domain.DefaultBoardTargets for the production mapping.
func NewResolver(targets map[string]domain.BoardTarget) *Resolver {
	copied := make(map[string]domain.BoardTarget, len(targets))
	for appID, target := range targets {
		copied[appID] = target
	}
	return &Resolver{targets: copied}
}

// Resolve returns the board target for an application ID. Applications
// without a mapping are rejected with domain.ErrBoardNotMapped; there is no
// fallback board.
func (r *Resolver) Resolve(applicationID string) (domain.BoardTarget, error) {
	target, ok := r.targets[applicationID]
	if !ok {
		return domain.BoardTarget{}, domain.ErrBoardNotMapped
	}
	return target, nil
}
