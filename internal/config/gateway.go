package config

import (
	"os"
	"strconv"
	"time"
)

const (
	gatewayURLEnv        = "GATEWAY_URL"
	gatewayPermissionEnv = "GATEWAY_PERMISSION"
	gatewayTimeoutEnv    = "GATEWAY_TIMEOUT_SECONDS"

	permissionGranted = "granted"
	permissionDenied  = "denied"

	defaultGatewayTimeout = 30 * time.Second
)

// GatewayConfig selects the alarm gateway. An empty URL means the
// in-process gateway, whose permission is set by Permission.
type GatewayConfig struct {
	URL        string
	Permission string
	Timeout    time.Duration
}

func LoadGatewayConfig() (*GatewayConfig, error) {
	permission := os.Getenv(gatewayPermissionEnv)
	if permission == "" {
		permission = permissionGranted
	}

	timeout := defaultGatewayTimeout
	if v := os.Getenv(gatewayTimeoutEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidGatewayTimeout
		}
		timeout = time.Duration(parsed) * time.Second
	}

	return &GatewayConfig{
		URL:        os.Getenv(gatewayURLEnv),
		Permission: permission,
		Timeout:    timeout,
	}, nil
}

func (c *GatewayConfig) Granted() bool {
	return c.Permission == permissionGranted
}

func (c *GatewayConfig) Validate() error {
	if c.Permission != permissionGranted && c.Permission != permissionDenied {
		return ErrInvalidGatewayPermission
	}
	return nil
}
