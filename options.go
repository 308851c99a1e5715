package pixed

// SessionOption configures a Session during creation.
// Use functional options to customize Session behavior.
//
// Example:
//
//	// Default configuration
//	s := pixed.NewSession(64, 64, "untitled")
//
//	// Custom history limits
//	s := pixed.NewSession(64, 64, "untitled", pixed.WithHistoryCap(10))
type SessionOption func(*sessionOptions)

// sessionOptions holds optional configuration for Session creation.
type sessionOptions struct {
	cfg    Config
	sprite *Sprite
}

// defaultSessionOptions returns the default session options.
func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		cfg: DefaultConfig(),
	}
}

// WithConfig replaces the whole engine configuration.
//
// Example:
//
//	cfg, err := pixed.LoadConfig(data)
//	...
//	s := pixed.NewSession(64, 64, "untitled", pixed.WithConfig(cfg))
func WithConfig(cfg Config) SessionOption {
	return func(o *sessionOptions) {
		cfg.defaults()
		o.cfg = cfg
	}
}

// WithSprite opens the session on an existing sprite instead of creating a
// blank one; the width, height and name arguments of NewSession are ignored.
//
// Example:
//
//	sprite := pixed.Deserialize(data)
//	s := pixed.NewSession(0, 0, "", pixed.WithSprite(sprite))
func WithSprite(sp *Sprite) SessionOption {
	return func(o *sessionOptions) {
		o.sprite = sp
	}
}

// WithHistoryCap overrides the snapshot cap for normal-size sprites.
func WithHistoryCap(n int) SessionOption {
	return func(o *sessionOptions) {
		if n > 0 {
			o.cfg.HistoryCap = n
		}
	}
}
