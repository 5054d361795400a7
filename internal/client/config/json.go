package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/safariskills/passport/internal/flagx"
	"github.com/safariskills/passport/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be written as strings like "300ms" or as integer nanoseconds; values are
// copied into the runtime Config afterwards.
type JSONConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	StorePath      *string         `json:"store_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ToastDuration  *timex.Duration `json:"toast_duration"`
	CloseDelay     *timex.Duration `json:"close_delay"`
	ScanFPS        *int            `json:"scan_fps"`
	ScanBoxSize    *int            `json:"scan_box_size"`
}

// parseJSON overlays Config with values from the JSON file named by the
// -c/-config flag. Absent flag means no JSON source. Fields missing from the
// file keep their current values. Read or unmarshal errors panic (caller may
// recover if desired).
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.StorePath != nil {
		cfg.StorePath = *jc.StorePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.ToastDuration != nil {
		cfg.ToastDuration = time.Duration(jc.ToastDuration.Duration)
	}
	if jc.CloseDelay != nil {
		cfg.CloseDelay = time.Duration(jc.CloseDelay.Duration)
	}
	if jc.ScanFPS != nil {
		cfg.ScanFPS = *jc.ScanFPS
	}
	if jc.ScanBoxSize != nil {
		cfg.ScanBoxSize = *jc.ScanBoxSize
	}
}
