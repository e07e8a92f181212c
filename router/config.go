package router

import "time"

// Config holds the router settings that are usually loaded from a file.
type Config struct {
	Timeout         time.Duration `yaml:"timeout"`
	QuietdownRoutes []string      `yaml:"quietdown_routes"`
	HideHeaders     []string      `yaml:"hide_headers"`
	CORS            CORSConfig    `yaml:"cors"`
}

// CORSConfig lists the origins, methods and headers answered in preflight
// responses. CORS is applied only when Origins is non-empty.
type CORSConfig struct {
	Origins          []string `yaml:"origins"`
	Methods          []string `yaml:"methods"`
	Headers          []string `yaml:"headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
}
