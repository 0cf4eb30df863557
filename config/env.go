package config

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment from the process
// environment
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	mode := os.Getenv("NODE_ENV")
	if mode == "" {
		mode = os.Getenv("ENV")
	}
	return ParseEnvironment(mode)
}

// ParseEnvironment maps a run mode name to an Environment, defaulting to
// Development
func ParseEnvironment(mode string) Environment {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	case "ci":
		return CI
	default:
		return Development
	}
}

// GinMode returns the gin mode matching the environment
func (e Environment) GinMode() string {
	switch e {
	case Production:
		return gin.ReleaseMode
	case Test, CI:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
