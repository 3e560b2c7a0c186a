package rest

import (
	"context"
	"fmt"
	"time"

	"ordersvc/domain/external"
)

// MemberClient calls the member service over HTTP.
type MemberClient struct {
	http httpClient
}

// NewMemberClient creates a REST member client.
func NewMemberClient(baseURL string, timeout time.Duration) *MemberClient {
	return &MemberClient{http: newHTTPClient(baseURL, "member", timeout)}
}

type memberDTO struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
	Grade  string `json:"grade"`
}

// GetMember implements external.MemberClient.
func (c *MemberClient) GetMember(ctx context.Context, memberID int64) (external.Member, error) {
	var dto memberDTO
	if err := c.http.getJSON(ctx, fmt.Sprintf("/api/members/%d", memberID), &dto); err != nil {
		return external.Member{}, err
	}
	return external.Member{
		ID:     dto.ID,
		Name:   dto.Name,
		Email:  dto.Email,
		Status: dto.Status,
		Grade:  dto.Grade,
	}, nil
}

var _ external.MemberClient = (*MemberClient)(nil)
