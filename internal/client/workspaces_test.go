package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gristlabs/grist-go/pkg/grist"
)

func TestWorkspacesGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/workspaces/7", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(grist.Workspace{ID: 7, Name: "Home"})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	workspace, err := client.Workspaces().Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Home", workspace.Name)
}

func TestWorkspacesUpdate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/workspaces/7", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var body map[string]interface{}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "Renamed", body["name"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Workspaces().Update(context.Background(), 7, "Renamed")
	require.NoError(t, err)
}

func TestWorkspacesDelete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/workspaces/7", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Workspaces().Delete(context.Background(), 7)
	require.NoError(t, err)
}

func TestWorkspacesUpdateAccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/workspaces/7/access", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var body struct {
			Delta struct {
				Users            map[string]*string `json:"users"`
				MaxInheritedRole *string            `json:"maxInheritedRole"`
			} `json:"delta"`
		}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.NotNil(t, body.Delta.MaxInheritedRole)
		assert.Equal(t, "viewers", *body.Delta.MaxInheritedRole)
		require.NotNil(t, body.Delta.Users["alice@example.com"])
		assert.Equal(t, "owners", *body.Delta.Users["alice@example.com"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	delta := grist.NewAccessDelta().
		WithUser("alice@example.com", "owners").
		WithMaxInheritedRole("viewers")

	err := client.Workspaces().UpdateAccess(context.Background(), 7, delta)
	require.NoError(t, err)
}

func TestWorkspacesCreateDoc(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/workspaces/7/docs", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var body map[string]interface{}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "Ledger", body["name"])
		assert.Equal(t, true, body["isPinned"])

		// The API responds with the bare string ID.
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`"new-doc-id"`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	docID, err := client.Workspaces().CreateDoc(context.Background(), 7, "Ledger", true)
	require.NoError(t, err)
	assert.Equal(t, "new-doc-id", docID)
}
