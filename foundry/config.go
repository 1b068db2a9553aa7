package foundry

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables read by LoadConfig.
const (
	EnvProjectEndpoint = "AZURE_AI_FOUNDRY_PROJECT_ENDPOINT"
	EnvAgentName       = "AZURE_AI_FOUNDRY_AGENT_NAME"
)

// ErrMissingConfig reports that a required setting is absent.
var ErrMissingConfig = errors.New("foundry configuration missing")

// Config holds the settings the TaskAgent needs to reach a Foundry project.
// It is resolved once by the host application and passed to NewTaskAgent.
type Config struct {
	// Endpoint is the base address of the Foundry project.
	Endpoint string
	// AgentName identifies which agent definition to invoke.
	AgentName string
}

// LoadConfig resolves a Config from the environment. A nil lookup defaults to
// os.LookupEnv. Missing values are left empty; use Validate to check them.
func LoadConfig(lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}
	return Config{
		Endpoint:  get(EnvProjectEndpoint),
		AgentName: get(EnvAgentName),
	}
}

// Missing returns the environment variable names of absent settings.
func (c Config) Missing() []string {
	var missing []string
	if c.Endpoint == "" {
		missing = append(missing, EnvProjectEndpoint)
	}
	if c.AgentName == "" {
		missing = append(missing, EnvAgentName)
	}
	return missing
}

// Validate returns an error wrapping ErrMissingConfig if a setting is absent.
func (c Config) Validate() error {
	if missing := c.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: set %s", ErrMissingConfig, strings.Join(missing, " and "))
	}
	return nil
}
