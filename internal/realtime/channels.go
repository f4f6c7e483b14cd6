package realtime

import (
	"fmt"
	"strings"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/core/domain/model/kernel"
)

const (
	branchPrefix = "branch:"
	clientPrefix = "client:"
)

func BranchChannel(id kernel.UUID) string {
	return branchPrefix + id.String()
}

func ClientChannel(id kernel.UUID) string {
	return clientPrefix + id.String()
}

// Channel is a parsed channel name.
type Channel struct {
	Kind string
	ID   kernel.UUID
}

// ParseChannel accepts "branch:<uuid>" and "client:<uuid>".
func ParseChannel(name string) (Channel, error) {
	kind, rawID, ok := strings.Cut(name, ":")
	if !ok || (kind+":" != branchPrefix && kind+":" != clientPrefix) {
		return Channel{}, fmt.Errorf("unknown channel %q", name)
	}
	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return Channel{}, fmt.Errorf("channel %q: %w", name, err)
	}
	return Channel{Kind: kind, ID: id}, nil
}

func (c Channel) IsBranch() bool {
	return c.Kind+":" == branchPrefix
}

func (c Channel) IsClient() bool {
	return c.Kind+":" == clientPrefix
}

// CanJoin reports whether a may listen on c. Clients hear only their own
// channel, restaurant staff only their branch, admins everything.
func CanJoin(a actor.Actor, c Channel) bool {
	switch a.Role() {
	case actor.Admin:
		return true
	case actor.Client:
		return c.IsClient() && c.ID.IsEqual(a.ID())
	case actor.Restaurant:
		branch := a.BranchID()
		return c.IsBranch() && branch != nil && c.ID.IsEqual(*branch)
	default:
		return false
	}
}
