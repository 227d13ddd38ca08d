package context

import (
	"context"

	bundleServerHttpTypes "github.com/Motmedel/bundle_server/pkg/http/types"
)

type requestIdContextType struct{}

var RequestIdContextKey = &requestIdContextType{}

type httpContextContextType struct{}

var HttpContextContextKey httpContextContextType

func WithRequestId(parent context.Context, requestId string) context.Context {
	return context.WithValue(parent, RequestIdContextKey, requestId)
}

func WithHttpContext(parent context.Context, httpContext *bundleServerHttpTypes.HttpContext) context.Context {
	return context.WithValue(parent, HttpContextContextKey, httpContext)
}

// GetHttpContext returns the exchange record registered by the access log middleware, or nil outside of it.
func GetHttpContext(ctx context.Context) *bundleServerHttpTypes.HttpContext {
	httpContext, _ := ctx.Value(HttpContextContextKey).(*bundleServerHttpTypes.HttpContext)
	return httpContext
}
