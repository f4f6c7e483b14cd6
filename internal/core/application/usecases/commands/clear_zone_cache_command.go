package commands

import (
	"context"
	"errors"
	"log/slog"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/guard"
)

var ErrClearZoneCacheCommandIsNotConstructed = errors.New(
	"ClearZoneCacheCommand must be created via NewClearZoneCacheCommand constructor",
)

// ClearZoneCacheCommand drops cached zones of one branch, or of every branch
// when no branch is given.
type ClearZoneCacheCommand struct {
	branchID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewClearZoneCacheCommand(branchID *kernel.UUID) (ClearZoneCacheCommand, error) {
	cmd := ClearZoneCacheCommand{guard: guard.NewConstructorGuard()}
	if branchID != nil {
		if err := branchID.Validate(); err != nil {
			return ClearZoneCacheCommand{}, err
		}
		id := *branchID
		cmd.branchID = &id
	}
	return cmd, nil
}

func (c ClearZoneCacheCommand) Validate() error {
	return c.guard.Validate(ErrClearZoneCacheCommandIsNotConstructed)
}

// BranchID is nil when every branch should be cleared.
func (c ClearZoneCacheCommand) BranchID() *kernel.UUID {
	if c.branchID == nil {
		return nil
	}
	id := *c.branchID
	return &id
}

type ClearZoneCacheCommandHandler struct {
	cache  ports.ZoneCache
	logger *slog.Logger
}

func NewClearZoneCacheCommandHandler(cache ports.ZoneCache, logger *slog.Logger) ClearZoneCacheCommandHandler {
	return ClearZoneCacheCommandHandler{
		cache:  cache,
		logger: logger.With("component", "clear_zone_cache_handler"),
	}
}

func (h ClearZoneCacheCommandHandler) Handle(ctx context.Context, cmd ClearZoneCacheCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if branchID := cmd.BranchID(); branchID != nil {
		h.cache.Invalidate(*branchID)
		h.logger.InfoContext(ctx, "zone cache cleared", "branch_id", branchID.String())
		return nil
	}

	h.cache.InvalidateAll()
	h.logger.InfoContext(ctx, "zone cache cleared for all branches")
	return nil
}
