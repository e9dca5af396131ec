package dataaggregator

import "context"

// DataSource answers one kind of query. A source that cannot help should return source.UnsupportedSourceError
// so the next registered source is tried.
type DataSource[Q any, T any] interface {
	GetName() string
	Lookup(context.Context, Q) (T, error)
}

// SourceFunc adapts a plain function into a DataSource
type SourceFunc[Q any, T any] struct {
	Name string
	Func func(context.Context, Q) (T, error)
}

func (s SourceFunc[Q, T]) GetName() string {
	return s.Name
}

func (s SourceFunc[Q, T]) Lookup(ctx context.Context, q Q) (T, error) {
	return s.Func(ctx, q)
}
