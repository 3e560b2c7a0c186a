package order

import (
	"context"

	"ordersvc/domain/shared"
)

// Filter narrows a listing to one member, one status, or both. Nil fields
// mean "any". The repository combines non-nil fields with AND.
type Filter struct {
	MemberID *int64
	Status   *Status
}

// Repository is the persistence port for the Order aggregate. Implementations
// load and store whole aggregates: an order always travels with its items.
type Repository interface {
	// Save persists the aggregate and returns the persisted state, with
	// storage-assigned ids filled in on first save. Items are replaced
	// wholesale on update.
	Save(ctx context.Context, o *Order) (*Order, error)

	// FindByIDWithItems loads one order and its items.
	// Returns ErrOrderNotFound when no such order exists.
	FindByIDWithItems(ctx context.Context, id int64) (*Order, error)

	// FindPage returns one page of orders matching the filter, each with its
	// items loaded. Default ordering is newest first.
	FindPage(ctx context.Context, filter Filter, req shared.PageRequest) (shared.Page[*Order], error)

	// CountByMember returns the number of orders placed by a member.
	CountByMember(ctx context.Context, memberID int64) (int64, error)

	// CountByStatus returns the number of orders in the given status.
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
