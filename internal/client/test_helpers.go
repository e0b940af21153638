package client

import (
	"time"

	internalhttp "github.com/gristlabs/grist-go/internal/http"
)

// NewTestClient creates a client against the given test server URL, scoped to
// the API base path and with a fast retry policy.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, "test-key",
		internalhttp.WithRetryConfig(1, time.Millisecond, time.Millisecond),
	).At("/api")

	return New(httpClient)
}
