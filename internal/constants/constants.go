package constants

import "time"

// Service defaults.
const (
	// DefaultServer is the hosted Grist endpoint.
	DefaultServer = "https://docs.getgrist.com"

	// DefaultBasePath is the API prefix under the server URL.
	DefaultBasePath = "/api"

	// APIKeyEnvVar names the environment variable holding the API key.
	APIKeyEnvVar = "GRIST_API_KEY"

	// APIKeyFileName is the key file looked up in the user's home directory.
	APIKeyFileName = ".grist-api-key"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// KeyFilePerm is the permission for the API key file.
	KeyFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the number of retries after the first attempt,
	// giving five attempts total.
	DefaultRetryMax = 4

	// DefaultRetryWait is the fixed pause between attempts.
	DefaultRetryWait = 1 * time.Second
)
