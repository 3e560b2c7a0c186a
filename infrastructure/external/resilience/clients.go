package resilience

import (
	"context"

	"ordersvc/domain/external"
)

// WrapMember decorates a member client with the policy.
func WrapMember(inner external.MemberClient, policy Config) external.MemberClient {
	return &memberClient{
		inner:   inner,
		policy:  policy,
		breaker: NewBreaker("member", policy),
	}
}

type memberClient struct {
	inner   external.MemberClient
	policy  Config
	breaker *Breaker
}

func (c *memberClient) GetMember(ctx context.Context, memberID int64) (external.Member, error) {
	return Do(ctx, c.policy, c.breaker, "member", func(ctx context.Context) (external.Member, error) {
		return c.inner.GetMember(ctx, memberID)
	})
}

// WrapProduct decorates a product client with the policy. Both product
// operations share one breaker because they hit the same service.
func WrapProduct(inner external.ProductClient, policy Config) external.ProductClient {
	return &productClient{
		inner:   inner,
		policy:  policy,
		breaker: NewBreaker("product", policy),
	}
}

type productClient struct {
	inner   external.ProductClient
	policy  Config
	breaker *Breaker
}

func (c *productClient) GetProduct(ctx context.Context, productID int64) (external.Product, error) {
	return Do(ctx, c.policy, c.breaker, "product", func(ctx context.Context) (external.Product, error) {
		return c.inner.GetProduct(ctx, productID)
	})
}

func (c *productClient) GetStock(ctx context.Context, productID int64) (external.ProductStock, error) {
	return Do(ctx, c.policy, c.breaker, "product", func(ctx context.Context) (external.ProductStock, error) {
		return c.inner.GetStock(ctx, productID)
	})
}

// WrapPayment decorates a payment client. The payment backend is treated
// as idempotent-safe for transport-level retries, same as the read-only
// services.
func WrapPayment(inner external.PaymentClient, policy Config) external.PaymentClient {
	return &paymentClient{
		inner:   inner,
		policy:  policy,
		breaker: NewBreaker("payment", policy),
	}
}

type paymentClient struct {
	inner   external.PaymentClient
	policy  Config
	breaker *Breaker
}

func (c *paymentClient) ProcessPayment(ctx context.Context, req external.PaymentRequest) (external.Payment, error) {
	return Do(ctx, c.policy, c.breaker, "payment", func(ctx context.Context) (external.Payment, error) {
		return c.inner.ProcessPayment(ctx, req)
	})
}

func (c *paymentClient) GetPayment(ctx context.Context, paymentID int64) (external.Payment, error) {
	return Do(ctx, c.policy, c.breaker, "payment", func(ctx context.Context) (external.Payment, error) {
		return c.inner.GetPayment(ctx, paymentID)
	})
}

var (
	_ external.MemberClient  = (*memberClient)(nil)
	_ external.ProductClient = (*productClient)(nil)
	_ external.PaymentClient = (*paymentClient)(nil)
)
