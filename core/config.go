package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Version is the relay release identifier surfaced in the delivery
// User-Agent header and echoed as client_version in handshake responses.
const Version = "1.1.0"

const DefaultClientName = "go-bouncer"

const defaultDeliveryTimeout = 30 * time.Second

type Config struct {
	// IngestionURL is the bouncer endpoint deliveries are posted to.
	IngestionURL string `koanf:"ingestion_url" mapstructure:"ingestion_url"`
	// HandshakeToken is the shared secret proving both parties hold the
	// same configuration. Sent on every delivery and checked during the
	// handshake verification exchange.
	HandshakeToken string `koanf:"handshake_token" mapstructure:"handshake_token"`
	// AuthToken is the credential sent with every delivery. An empty value
	// disables outbound delivery while leaving the handshake endpoint
	// registered so operators can still run the self-test.
	AuthToken       string        `koanf:"auth_token" mapstructure:"auth_token"`
	ClientName      string        `koanf:"client_name" mapstructure:"client_name"`
	ClientVersion   string        `koanf:"client_version" mapstructure:"client_version"`
	DeliveryTimeout time.Duration `koanf:"delivery_timeout" mapstructure:"delivery_timeout"`
}

func DefaultConfig() Config {
	return Config{
		ClientName:      DefaultClientName,
		ClientVersion:   Version,
		DeliveryTimeout: defaultDeliveryTimeout,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ClientName) == "" {
		return fmt.Errorf("core: client_name is required")
	}
	if strings.TrimSpace(c.ClientVersion) == "" {
		return fmt.Errorf("core: client_version is required")
	}
	if trimmed := strings.TrimSpace(c.IngestionURL); trimmed != "" {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return fmt.Errorf("core: ingestion_url is not a valid url: %w", err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("core: ingestion_url must be an absolute url")
		}
	}
	if c.DeliveryTimeout < 0 {
		return fmt.Errorf("core: delivery_timeout cannot be negative")
	}
	return nil
}

// HandshakeEnabled reports whether the handshake surface may be registered.
// Missing URL or shared secret leaves the whole relay in disabled mode.
func (c Config) HandshakeEnabled() bool {
	return strings.TrimSpace(c.IngestionURL) != "" &&
		strings.TrimSpace(c.HandshakeToken) != ""
}

// DeliveryEnabled reports whether outbound notifications may be scheduled.
// All three settings must be present; partial configuration is a silent
// no-op rather than an error.
func (c Config) DeliveryEnabled() bool {
	return c.HandshakeEnabled() && strings.TrimSpace(c.AuthToken) != ""
}

func (c Config) UserAgent() string {
	return strings.TrimSpace(c.ClientName) + "/" + strings.TrimSpace(c.ClientVersion)
}
