package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"rfm"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	RFM struct {
		// AsOf has no default: every run must name its reference date.
		AsOf        string `envconfig:"RFM_AS_OF"`
		Input       string `envconfig:"RFM_INPUT"`
		Format      string `envconfig:"RFM_FORMAT" default:"csv"`
		Output      string `envconfig:"RFM_OUTPUT" default:"rfm.csv"`
		MaxUploadMB int64  `envconfig:"RFM_MAX_UPLOAD_MB" default:"64"`
	}

	DB struct {
		DSN   string `envconfig:"DB_DSN"`
		Table string `envconfig:"DB_TABLE" default:"online_retail"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"60s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Auth struct {
		Secret string `envconfig:"AUTH_SECRET"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

// ParseAsOf parses a reference date given as YYYY-MM-DD or YYYY-MM-DD HH:MM:SS, in UTC.
func ParseAsOf(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("as-of date is required (YYYY-MM-DD)")
	}

	for _, layout := range []string{time.DateOnly, time.DateTime} {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid as-of date %q: want YYYY-MM-DD", s)
}
