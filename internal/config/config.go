package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Monday holds board API settings. The token is mandatory: without it no
// outbound call can be made, so loading fails rather than deferring the
// error to request time.
type Monday struct {
	APIToken       string        `envconfig:"MONDAY_API_TOKEN" required:"true"`
	APIURL         string        `envconfig:"MONDAY_API_URL" default:"https://api.monday.com/v2"`
	PageSize       int           `envconfig:"MONDAY_SEARCH_PAGE_SIZE" default:"500"`
	FindAttempts   int           `envconfig:"MONDAY_FIND_ATTEMPTS" default:"3"`
	FindRetryDelay time.Duration `envconfig:"MONDAY_FIND_RETRY_DELAY" default:"2s"`
}

// SMTP holds email notification settings. Notifications are optional: an
// empty host disables them.
type SMTP struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM"`
	To       string `envconfig:"SMTP_TO"`
}

// Enabled reports whether enough of the transport is configured to send.
func (s SMTP) Enabled() bool {
	return s.Host != "" && s.From != "" && s.To != ""
}

// ClickHouse holds delivery-audit storage settings. An empty host disables
// the audit trail.
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST"`
	Port            string `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	Database        string `envconfig:"CLICKHOUSE_DB" default:"default"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// Enabled reports whether the audit store should be wired at startup.
func (c ClickHouse) Enabled() bool {
	return c.Host != ""
}

type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
}

type Config struct {
	Service    Service
	Monday     Monday
	SMTP       SMTP
	ClickHouse ClickHouse
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
