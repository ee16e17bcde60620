package core

import "context"

type contextKey string

// The state surface and the operation surface travel under separate keys so
// a consumer can be handed one without the other.
const (
	stateKey      contextKey = "diary_state"
	operationsKey contextKey = "diary_operations"
)

// WithState returns a copy of ctx carrying src as the state surface.
func WithState(ctx context.Context, src StateSource) context.Context {
	return context.WithValue(ctx, stateKey, src)
}

// StateFrom returns the state surface carried by ctx.
func StateFrom(ctx context.Context) (StateSource, bool) {
	src, ok := ctx.Value(stateKey).(StateSource)
	return src, ok
}

// WithOperations returns a copy of ctx carrying ops as the operation surface.
func WithOperations(ctx context.Context, ops Operations) context.Context {
	return context.WithValue(ctx, operationsKey, ops)
}

// OperationsFrom returns the operation surface carried by ctx.
func OperationsFrom(ctx context.Context) (Operations, bool) {
	ops, ok := ctx.Value(operationsKey).(Operations)
	return ops, ok
}

// Provide installs both surfaces of s into ctx.
func Provide(ctx context.Context, s *Store) context.Context {
	return WithOperations(WithState(ctx, s), s.Operations())
}
