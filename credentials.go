package client

// DefaultAPIURL is the production Taskmesh API endpoint, used whenever the
// credential source does not supply an api-url of its own.
const DefaultAPIURL = "https://api.taskmesh.io/v1"

// Config keys understood by [CredentialSource.Get].
const (
	KeyAPIKey = "api-key"
	KeyAPIURL = "api-url"
	KeyTenant = "tenant"
)

// APIConfig carries the credentials and scope for a single request.
type APIConfig struct {
	// APIKey is the opaque bearer token sent in the X-Api-Key header.
	// Required for every request.
	APIKey string

	// APIURL is the base URL of the API. Empty means [DefaultAPIURL].
	APIURL string

	// Tenant is the organization scope identifier. Required only for
	// tenant-scoped resource paths.
	Tenant string
}

// CredentialSource supplies credentials and configuration values to the
// client. Implementations are queried fresh on every request, so a changed
// API key or tenant takes effect on the next call without rebuilding the
// client. A missing value is reported as the empty string, never an error;
// enforcement happens inside the client.
type CredentialSource interface {
	// APIConfig returns the current credentials and tenant scope.
	APIConfig() APIConfig

	// Get returns the configuration value for key, or "" if unset.
	Get(key string) string
}

// StaticCredentials is a fixed-value [CredentialSource], convenient for
// tests and for programs that manage configuration themselves.
type StaticCredentials APIConfig

func (s StaticCredentials) APIConfig() APIConfig { return APIConfig(s) }

func (s StaticCredentials) Get(key string) string {
	switch key {
	case KeyAPIKey:
		return s.APIKey
	case KeyAPIURL:
		return s.APIURL
	case KeyTenant:
		return s.Tenant
	}
	return ""
}
