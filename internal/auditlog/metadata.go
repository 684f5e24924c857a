package auditlog

import "context"

// Metadata describes who triggered a mutation and from where.
type Metadata struct {
	Source string // "tui" or "cli"
	Actor  string // local OS user
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context. Empty fields keep the
// values already present.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		Source: pick(meta.Source, existing.Source),
		Actor:  pick(meta.Actor, existing.Actor),
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
