package order

import (
	"context"

	"ordersvc/domain/shared"
)

// ByMemberIDSpecification matches orders placed by a specific member.
type ByMemberIDSpecification struct {
	MemberID int64
}

// IsSatisfiedBy returns true if the order belongs to the member.
func (spec ByMemberIDSpecification) IsSatisfiedBy(ctx context.Context, o *Order) bool {
	return o.MemberID() == spec.MemberID
}

// ByStatusSpecification matches orders in a specific status.
type ByStatusSpecification struct {
	Status Status
}

// IsSatisfiedBy returns true if the order is in the status.
func (spec ByStatusSpecification) IsSatisfiedBy(ctx context.Context, o *Order) bool {
	return o.Status() == spec.Status
}

// SpecificationFromFilter translates a Filter into a composed specification.
// In-memory repositories evaluate it per order; the SQL repository builds
// WHERE clauses from the filter directly and never calls this.
func SpecificationFromFilter(filter Filter) shared.Specification[*Order] {
	spec := shared.MatchAll[*Order]()
	if filter.MemberID != nil {
		spec = shared.And(spec, ByMemberIDSpecification{MemberID: *filter.MemberID})
	}
	if filter.Status != nil {
		spec = shared.And(spec, ByStatusSpecification{Status: *filter.Status})
	}
	return spec
}

var (
	_ shared.Specification[*Order] = ByMemberIDSpecification{}
	_ shared.Specification[*Order] = ByStatusSpecification{}
)
