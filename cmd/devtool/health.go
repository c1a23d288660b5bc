package main

import (
	"fmt"
	"net/http"
	"time"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check the running wheel portal (default http://localhost:8080)"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := getEnv("WHEEL_PORTAL_URL", fmt.Sprintf("http://localhost:%s", getEnv("PORT", "8080")))
	if len(args) > 0 {
		base = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	client := &http.Client{Timeout: 5 * time.Second}
	for _, path := range []string{"/healthz", "/readyz"} {
		start := time.Now()
		resp, err := client.Get(base + path)
		if err != nil {
			PrintError("%s unreachable: %v", path, err)
			return err
		}
		resp.Body.Close()
		duration := time.Since(start)

		if resp.StatusCode != http.StatusOK {
			PrintError("%s returned %d", path, resp.StatusCode)
			return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
		}
		if duration > time.Second {
			PrintWarning("%s slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, duration)
		}
	}
	return nil
}
