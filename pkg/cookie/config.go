package cookie

import "net/http"

// Config holds cookie manager configuration
type Config struct {
	Path     string        `env:"BROWNIEGATE_COOKIE_PATH" envDefault:"/" yaml:"path"`
	Domain   string        `env:"BROWNIEGATE_COOKIE_DOMAIN" envDefault:"" yaml:"domain"`
	Secure   bool          `env:"BROWNIEGATE_COOKIE_SECURE" envDefault:"false" yaml:"secure"`
	HttpOnly bool          `env:"BROWNIEGATE_COOKIE_HTTP_ONLY" envDefault:"true" yaml:"http_only"`
	SameSite http.SameSite `env:"BROWNIEGATE_COOKIE_SAME_SITE" envDefault:"2" yaml:"same_site"` // 2 = SameSiteLaxMode
}

// DefaultConfig returns default cookie configuration
func DefaultConfig() Config {
	return Config{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// NewFromConfig creates a new Manager from the provided Config.
// Zero values fall back to the Manager defaults, except HttpOnly which is
// taken as given.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := make([]Option, 0, 5+len(opts))

	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}
	configOpts = append(configOpts, WithSecure(cfg.Secure), WithHTTPOnly(cfg.HttpOnly))

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
