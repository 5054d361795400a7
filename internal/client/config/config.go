// Package config loads runtime settings for the Skills Passport client.
//
// Sources are applied in order, later ones winning:
// defaults -> environment -> JSON file -> command-line flags.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: base address of the credential-verification API,
//     joined with endpoint paths by the gateway.
//   - StorePath: path of the local SQLite store holding the persisted session.
//   - RequestTimeout: network timeout for gateway calls. Zero means no
//     timeout; a hung request then keeps the loading indicator up until it
//     settles.
//   - ToastDuration: how long a toast notification stays visible.
//   - CloseDelay: modal close-animation delay before overlay removal.
//   - ScanFPS / ScanBoxSize: decode frame rate and box size handed to the
//     scanner capability.
type Config struct {
	APIBaseURL     string        `env:"SSP_API_BASE_URL"`
	StorePath      string        `env:"SSP_STORE_PATH"`
	RequestTimeout time.Duration `env:"SSP_REQUEST_TIMEOUT"`
	ToastDuration  time.Duration `env:"SSP_TOAST_DURATION"`
	CloseDelay     time.Duration `env:"SSP_CLOSE_DELAY"`
	ScanFPS        int           `env:"SSP_SCAN_FPS"`
	ScanBoxSize    int           `env:"SSP_SCAN_BOX_SIZE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	// 127.0.0.1 rather than localhost to avoid IPv6 resolution surprises.
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.StorePath = "passport.db"
	c.RequestTimeout = 0
	c.ToastDuration = 5 * time.Second
	c.CloseDelay = 300 * time.Millisecond
	c.ScanFPS = 10
	c.ScanBoxSize = 250
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if given via -c/-config), and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
