// Package gristclient provides the main entry point for creating Grist API clients
package gristclient

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gristlabs/grist-go/internal/client"
	"github.com/gristlabs/grist-go/internal/constants"
	internalhttp "github.com/gristlabs/grist-go/internal/http"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// New creates a new Grist API client from the given configuration.
//
// The API key is resolved in order: Config.APIKey, the GRIST_API_KEY
// environment variable, then the key file in the user's home directory. When
// none yields a key and no pre-built session is supplied, New fails with
// grist.ErrAPIKeyNotFound. A session supplied via Config.HTTPClient is
// expected to carry its own credentials and conflicts with an explicit key.
func New(ctx context.Context, config *grist.Config) (grist.Client, error) {
	if config == nil {
		return nil, grist.ErrConfigRequired
	}

	server := config.Server
	if server == "" {
		server = constants.DefaultServer
	}

	// Normalize the server URL
	server = strings.TrimSuffix(server, "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = constants.DefaultBasePath
	}

	if config.APIKey != "" && config.HTTPClient != nil {
		return nil, grist.ErrKeyAndSessionConflict
	}

	apiKey := config.APIKey
	if apiKey == "" && config.HTTPClient == nil {
		resolved, err := resolveAPIKey()
		if err != nil {
			return nil, err
		}

		apiKey = resolved
	}

	opts := []internalhttp.Option{
		internalhttp.WithDryRun(config.DryRun),
		internalhttp.WithDebug(config.Debug),
	}

	if config.HTTPClient != nil {
		opts = append(opts, internalhttp.WithHTTPClient(config.HTTPClient))
	}

	if config.Logger != nil {
		opts = append(opts, internalhttp.WithLogger(config.Logger))
	}

	if config.UserAgent != "" {
		opts = append(opts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		if waitMin == 0 {
			waitMin = constants.DefaultRetryWait
		}

		waitMax := config.RetryWaitMax
		if waitMax == 0 {
			waitMax = waitMin
		}

		opts = append(opts, internalhttp.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	if config.HTTPTimeout > 0 && config.HTTPClient == nil {
		opts = append(opts, internalhttp.WithHTTPTimeout(config.HTTPTimeout))
	}

	httpClient := internalhttp.NewClient(server, apiKey, opts...).At(basePath)

	return client.New(httpClient), nil
}

// NewWithAPIKey creates a new client for the given server and API key.
func NewWithAPIKey(ctx context.Context, server, apiKey string) (grist.Client, error) {
	return New(ctx, &grist.Config{
		Server: server,
		APIKey: apiKey,
	})
}

// NewDryRun creates a client that logs and skips every mutating call while
// still executing reads.
func NewDryRun(ctx context.Context, server string) (grist.Client, error) {
	return New(ctx, &grist.Config{
		Server: server,
		DryRun: true,
		Logger: grist.NewStderrLogger(),
	})
}

// KeyFilePath returns the location of the API key file in the user's home
// directory.
func KeyFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}

	return filepath.Join(home, constants.APIKeyFileName), nil
}

// resolveAPIKey looks the key up in the environment, then in the key file.
func resolveAPIKey() (string, error) {
	if key := os.Getenv(constants.APIKeyEnvVar); key != "" {
		return key, nil
	}

	path, err := KeyFilePath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path) // #nosec G304 -- fixed name under the user's home directory
	if err != nil {
		return "", fmt.Errorf("%w %s", grist.ErrAPIKeyNotFound, path)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%w %s", grist.ErrAPIKeyNotFound, path)
	}

	return key, nil
}
