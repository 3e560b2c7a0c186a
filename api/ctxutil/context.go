// Package ctxutil bridges gin request metadata into the contexts handed
// to the application and storage layers.
package ctxutil

import (
	"context"

	"ordersvc/api/response"
	"ordersvc/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context tagged with the request id so
// lower layers can log it.
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}
