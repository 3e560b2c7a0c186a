// Package mock provides in-process implementations of the external service
// clients with fixed, documented behavior for development and testing.
// Well-known ids trigger failure paths so every error branch of the order
// pipeline can be exercised without real downstream services.
package mock

import (
	"context"
	"fmt"

	"ordersvc/domain/external"
	"ordersvc/pkg/logger"

	"go.uber.org/zap"
)

// MemberClient simulates the member service.
//
// Fixtures:
//
//	9999 - member not found
//	8888 - INACTIVE member
//	7777 - service unavailable
//	5555 - service timeout (also unavailable)
//	any other id - ACTIVE member "Mock Member <id>"
type MemberClient struct{}

// NewMemberClient creates the mock member client.
func NewMemberClient() *MemberClient {
	return &MemberClient{}
}

// GetMember implements external.MemberClient.
func (c *MemberClient) GetMember(ctx context.Context, memberID int64) (external.Member, error) {
	logger.Info("[MOCK] Getting member", zap.Int64("member_id", memberID))

	switch memberID {
	case 7777:
		logger.Warn("[MOCK] Member service unavailable", zap.Int64("member_id", memberID))
		return external.Member{}, fmt.Errorf("member service unavailable: %w", external.ErrUnavailable)
	case 5555:
		logger.Warn("[MOCK] Member service timeout", zap.Int64("member_id", memberID))
		return external.Member{}, fmt.Errorf("member service timeout: %w", external.ErrUnavailable)
	case 9999:
		logger.Warn("[MOCK] Member not found", zap.Int64("member_id", memberID))
		return external.Member{}, fmt.Errorf("member %d: %w", memberID, external.ErrNotFound)
	case 8888:
		logger.Warn("[MOCK] Member is INACTIVE", zap.Int64("member_id", memberID))
		return external.Member{
			ID:     memberID,
			Name:   "Inactive Member",
			Email:  "inactive@example.com",
			Status: "INACTIVE",
			Grade:  "BRONZE",
		}, nil
	}

	return external.Member{
		ID:     memberID,
		Name:   fmt.Sprintf("Mock Member %d", memberID),
		Email:  fmt.Sprintf("member%d@example.com", memberID),
		Status: external.MemberStatusActive,
		Grade:  "GOLD",
	}, nil
}

var _ external.MemberClient = (*MemberClient)(nil)
