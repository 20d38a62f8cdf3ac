package routific

import "errors"

// Config holds configuration for the Routific product API integration
type Config struct {
	// APIKey is the bearer token issued by Routific
	APIKey string
	// BaseURL is the base URL for the Routific product API
	BaseURL string
	// WorkspaceID scopes every order submission to one Routific workspace
	WorkspaceID int64
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// DefaultBaseURL is the production Routific product API endpoint
const DefaultBaseURL = "https://product-api.routific.com"

// Errors for Routific configuration
var (
	ErrConfigMissingAPIKey      = errors.New("routific: API key is required")
	ErrConfigMissingWorkspaceID = errors.New("routific: workspace ID is required")
)

// NewConfig creates a new Routific configuration with defaults
func NewConfig(apiKey string, workspaceID int64) *Config {
	return &Config{
		APIKey:         apiKey,
		BaseURL:        DefaultBaseURL,
		WorkspaceID:    workspaceID,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Routific configuration and fills defaults
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.WorkspaceID == 0 {
		return ErrConfigMissingWorkspaceID
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
