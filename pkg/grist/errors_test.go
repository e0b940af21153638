package grist_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gristlabs/grist-go/pkg/grist"
)

func TestAPIErrorRendering(t *testing.T) {
	t.Parallel()

	t.Run("explicit message wins", func(t *testing.T) {
		t.Parallel()

		err := &grist.APIError{
			URL:        "https://example.com/api/orgs",
			StatusCode: http.StatusOK,
			Message:    "failed to parse JSON",
		}
		assert.Equal(t, "error at https://example.com/api/orgs, code 200: failed to parse JSON", err.Error())
	})

	t.Run("parsed body is rendered", func(t *testing.T) {
		t.Parallel()

		err := &grist.APIError{
			URL:          "https://example.com/api/docs/x",
			StatusCode:   http.StatusNotFound,
			ResponseJSON: map[string]interface{}{"error": "document not found"},
		}
		assert.Contains(t, err.Error(), "code 404")
		assert.Contains(t, err.Error(), "document not found")
	})

	t.Run("falls back to status text", func(t *testing.T) {
		t.Parallel()

		err := &grist.APIError{
			URL:        "https://example.com/api/docs/x",
			StatusCode: http.StatusBadGateway,
		}
		assert.Contains(t, err.Error(), "Bad Gateway")
	})
}

func TestAPIErrorDetail(t *testing.T) {
	t.Parallel()

	withDetail := &grist.APIError{
		ResponseJSON: map[string]interface{}{"error": "no such table"},
	}
	assert.Equal(t, "no such table", withDetail.ErrorDetail())

	withoutDetail := &grist.APIError{ResponseJSON: []interface{}{"not", "an", "object"}}
	assert.Empty(t, withoutDetail.ErrorDetail())
}

func TestStatusHelpers(t *testing.T) {
	t.Parallel()

	notFound := fmt.Errorf("getting document: %w", &grist.APIError{StatusCode: http.StatusNotFound})
	assert.True(t, grist.IsNotFound(notFound))
	assert.False(t, grist.IsUnauthorized(notFound))

	unauthorized := &grist.APIError{StatusCode: http.StatusUnauthorized}
	assert.True(t, grist.IsUnauthorized(unauthorized))

	forbidden := &grist.APIError{StatusCode: http.StatusForbidden}
	assert.True(t, grist.IsForbidden(forbidden))

	assert.False(t, grist.IsNotFound(errors.New("plain error")))
	assert.False(t, grist.IsNotFound(nil))
}
