package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gristlabs/grist-go/pkg/grist"
)

func TestRecordsList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/tables/Table1/records", request.URL.Path)
		assert.Equal(t, "GET", request.Method)
		assert.Equal(t, `{"pet":["cat","dog"]}`, request.URL.Query().Get("filters"))
		assert.Equal(t, "pet,-age", request.URL.Query().Get("sort_by"))
		assert.Equal(t, "10", request.URL.Query().Get("limit"))

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(grist.RecordsEnvelope{
			Records: []grist.Record{
				{ID: 1, Fields: grist.Fields{"pet": "cat", "age": float64(3)}},
				{ID: 2, Fields: grist.Fields{"pet": "dog", "age": float64(5)}},
			},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	opts := grist.NewListOptions().
		WithFilter("pet", "cat", "dog").
		WithSort("pet,-age").
		WithLimit(10)

	records, err := client.Records().List(context.Background(), "doc-id", "Table1", opts)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(1), records[0].ID)
	assert.Equal(t, "cat", records[0].Fields["pet"])
}

func TestRecordsListNoOptions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		// No options means no query parameters at all.
		assert.Empty(t, request.URL.RawQuery)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(grist.RecordsEnvelope{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	records, err := client.Records().List(context.Background(), "doc-id", "Table1", nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordsCreate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/tables/Table1/records", request.URL.Path)
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "true", request.URL.Query().Get("noparse"))

		var body struct {
			Records []struct {
				Fields grist.Fields `json:"fields"`
			} `json:"records"`
		}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.Len(t, body.Records, 2)
		assert.Equal(t, "cat", body.Records[0].Fields["pet"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(grist.RecordsEnvelope{
			Records: []grist.Record{{ID: 11}, {ID: 12}},
		})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	created, err := client.Records().Create(context.Background(), "doc-id", "Table1",
		[]grist.Fields{
			{"pet": "cat"},
			{"pet": "dog"},
		},
		&grist.RecordWriteOptions{NoParse: true})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, int64(11), created[0].ID)
}

func TestRecordsUpdate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/tables/Table1/records", request.URL.Path)
		assert.Equal(t, "PATCH", request.Method)

		var body grist.RecordsEnvelope

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.Len(t, body.Records, 1)
		assert.Equal(t, int64(5), body.Records[0].ID)
		assert.Equal(t, "hamster", body.Records[0].Fields["pet"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Records().Update(context.Background(), "doc-id", "Table1",
		[]grist.Record{{ID: 5, Fields: grist.Fields{"pet": "hamster"}}}, nil)
	require.NoError(t, err)
}

func TestRecordsUpdateRequiresID(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Records().Update(context.Background(), "doc-id", "Table1",
		[]grist.Record{
			{ID: 5, Fields: grist.Fields{"pet": "cat"}},
			{Fields: grist.Fields{"pet": "dog"}},
		}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, grist.ErrRecordIDRequired)

	// The check fires before any request goes out.
	assert.Equal(t, int32(0), hits.Load())
}

func TestRecordsCreateOrUpdate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/tables/Table1/records", request.URL.Path)
		assert.Equal(t, "PUT", request.Method)

		var body struct {
			Records []struct {
				Require grist.Fields `json:"require"`
				Fields  grist.Fields `json:"fields"`
			} `json:"records"`
		}

		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		require.Len(t, body.Records, 1)
		assert.Equal(t, "alice@example.com", body.Records[0].Require["email"])
		assert.Equal(t, "cat", body.Records[0].Fields["pet"])

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Records().CreateOrUpdate(context.Background(), "doc-id", "Table1",
		[]grist.Record{
			{Fields: grist.Fields{"email": "alice@example.com", "pet": "cat"}},
		},
		[]string{"email"}, nil)
	require.NoError(t, err)
}

func TestRecordsDelete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/docs/doc-id/tables/Table1/data/delete", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		// The endpoint takes a bare array of row IDs.
		var rowIDs []int64

		require.NoError(t, json.NewDecoder(request.Body).Decode(&rowIDs))
		assert.Equal(t, []int64{1, 2, 3}, rowIDs)

		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	err := client.Records().Delete(context.Background(), "doc-id", "Table1", []int64{1, 2, 3})
	require.NoError(t, err)
}
