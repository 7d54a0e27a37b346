package options

import "context"

// Unexported to prevent collisions with context keys from other packages.
type configKey struct{}

// Returns a context carrying cfg.
//
// The value is stored by copy, so later changes to the caller's variable are
// not observed by readers of the context.
func WithConfig(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// Extracts the configuration stored by [WithConfig].
//
// Reports false and returns [Default] when the context carries none.
func FromContext(ctx context.Context) (Config, bool) {
	cfg, ok := ctx.Value(configKey{}).(Config)
	if !ok {
		return Default(), false
	}
	return cfg, true
}
