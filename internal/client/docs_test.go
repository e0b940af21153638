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

func TestDocsGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(grist.Doc{
			ID:        "doc-id",
			Name:      "Ledger",
			IsPinned:  true,
			Workspace: &grist.Workspace{ID: 7, Name: "Home"},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	doc, err := client.Docs().Get(context.Background(), "doc-id")
	require.NoError(t, err)
	assert.Equal(t, "Ledger", doc.Name)
	assert.True(t, doc.IsPinned)
	require.NotNil(t, doc.Workspace)
	assert.Equal(t, int64(7), doc.Workspace.ID)
}

func TestDocsUpdate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var body map[string]interface{}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "Renamed", body["name"])

		// Unset fields stay out of the payload entirely.
		_, present := body["isPinned"]
		assert.False(t, present)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Docs().Update(context.Background(), "doc-id", grist.NewDocUpdate().WithName("Renamed"))
	require.NoError(t, err)
}

func TestDocsMove(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/move", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var body map[string]interface{}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, float64(9), body["workspace"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Docs().Move(context.Background(), "doc-id", 9)
	require.NoError(t, err)
}

func TestDocsDelete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id", request.URL.Path)
		assert.Equal(t, "DELETE", request.Method)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Docs().Delete(context.Background(), "doc-id")
	require.NoError(t, err)
}

func TestDocsListUsers(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/access", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		role := "editors"

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(grist.AccessList{
			MaxInheritedRole: &role,
			Users: []grist.User{
				{ID: 1, Name: "Alice", Email: "alice@example.com", Access: "owners"},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	access, err := client.Docs().ListUsers(context.Background(), "doc-id")
	require.NoError(t, err)
	require.NotNil(t, access.MaxInheritedRole)
	assert.Equal(t, "editors", *access.MaxInheritedRole)
	require.Len(t, access.Users, 1)
}

func TestDocsDownload(t *testing.T) {
	t.Parallel()

	content := []byte("SQLite format 3\x00")

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/download", request.URL.Path)
		assert.Equal(t, "GET", request.Method)

		writer.Header().Set("Content-Type", "application/x-sqlite3")
		_, _ = writer.Write(content)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	data, err := client.Docs().Download(context.Background(), "doc-id")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestDocsDownloadXLSX(t *testing.T) {
	t.Parallel()

	content := []byte{0x50, 0x4b, 0x03, 0x04}

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/download/xlsx", request.URL.Path)

		writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = writer.Write(content)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	data, err := client.Docs().DownloadXLSX(context.Background(), "doc-id")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestDocsDownloadCSV(t *testing.T) {
	t.Parallel()

	content := []byte("id,name\n1,alice\n")

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/download/csv", request.URL.Path)
		assert.Equal(t, "Table1", request.URL.Query().Get("tableId"))

		writer.Header().Set("Content-Type", "text/csv")
		_, _ = writer.Write(content)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	data, err := client.Docs().DownloadCSV(context.Background(), "doc-id", "Table1")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}
