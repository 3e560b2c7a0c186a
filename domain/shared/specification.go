package shared

import (
	"context"
)

// Specification encapsulates a business rule used to filter entities.
// In-memory repositories evaluate specifications directly; SQL repositories
// translate the equivalent criteria into WHERE clauses.
type Specification[T any] interface {
	// IsSatisfiedBy checks if an entity satisfies the specification
	IsSatisfiedBy(ctx context.Context, entity T) bool
}

// ============================================================================
// Composite Specifications
// ============================================================================

// AndSpecification is the logical AND of two specifications.
type AndSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

// IsSatisfiedBy returns true if both specifications are satisfied.
func (spec AndSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return spec.Left.IsSatisfiedBy(ctx, entity) && spec.Right.IsSatisfiedBy(ctx, entity)
}

// And combines two specifications with logical AND.
func And[T any](left, right Specification[T]) Specification[T] {
	return AndSpecification[T]{Left: left, Right: right}
}

// OrSpecification is the logical OR of two specifications.
type OrSpecification[T any] struct {
	Left  Specification[T]
	Right Specification[T]
}

// IsSatisfiedBy returns true if either specification is satisfied.
func (spec OrSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return spec.Left.IsSatisfiedBy(ctx, entity) || spec.Right.IsSatisfiedBy(ctx, entity)
}

// Or combines two specifications with logical OR.
func Or[T any](left, right Specification[T]) Specification[T] {
	return OrSpecification[T]{Left: left, Right: right}
}

// MatchAllSpecification accepts every entity.
type MatchAllSpecification[T any] struct{}

// IsSatisfiedBy always returns true.
func (spec MatchAllSpecification[T]) IsSatisfiedBy(ctx context.Context, entity T) bool {
	return true
}

// MatchAll returns a specification satisfied by every entity.
func MatchAll[T any]() Specification[T] {
	return MatchAllSpecification[T]{}
}
