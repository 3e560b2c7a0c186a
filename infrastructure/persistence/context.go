// Package persistence holds storage-layer plumbing shared by the concrete
// repositories: context keys for transactions and request ids.
package persistence

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const (
	txKey        contextKey = "persistence.tx"
	requestIDKey contextKey = "persistence.request_id"
)

// ContextWithTx returns a context carrying an active transaction. Repository
// methods pick it up so multiple calls join the same transaction.
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// TxFromContext extracts the active transaction, or nil if none.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithRequestID returns a context tagged with the request id so
// storage-layer logs correlate with the HTTP request.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request id, or "" if none.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
