package log

import (
	"context"

	"go.uber.org/zap"
)

type contextKeyType struct{}

var contextKey contextKeyType

// AttachArgs are used to create a logger with pre-filled key-value pairs to be
// attached to a context object.
//
// All zero value fields will be ignored and only non-zero values will be
// attached.
type AttachArgs struct {
	TraceID string

	AdditionalPairs map[string]interface{}
}

// Attach attaches a logger with data extracted from args into the context
// object.
func Attach(ctx context.Context, args AttachArgs) context.Context {
	const additional = 1 // Number of non-AdditionalPairs fields in AttachArgs struct.
	kv := make([]interface{}, 0, len(args.AdditionalPairs)*2+additional)
	if args.TraceID != "" {
		kv = append(kv, zap.String("traceID", args.TraceID))
	}
	for k, v := range args.AdditionalPairs {
		kv = append(kv, k, v)
	}
	attached := C(ctx)
	if len(kv) == 0 {
		// We can also just return ctx directly here without attaching,
		// but attaching the value again will make log.C(ctx) faster,
		// which is usually used a lot more than other values from the context
		// object.
		return context.WithValue(ctx, contextKey, attached)
	}
	return context.WithValue(ctx, contextKey, attached.With(kv...))
}

// C is short for Context.
//
// It extract the logger attached to the current context object,
// and fallback to the global logger if none is found.
//
// When you have a context object and want to do logging,
// you should always use this one instead of the global one.
// For example:
//
//	log.C(ctx).Errorw("Something went wrong!", "err", err)
//
// The return value is guaranteed to be non-nil.
func C(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(contextKey).(*zap.SugaredLogger); ok && l != nil {
		return l
	}
	return logger
}
