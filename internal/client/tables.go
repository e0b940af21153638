package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	internalhttp "github.com/gristlabs/grist-go/internal/http"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// TablesClient implements the grist.TablesClient interface.
type TablesClient struct {
	httpClient *internalhttp.Client
}

// NewTablesClient creates a new tables client over a transport scoped to the
// docs collection; tables have no top-level collection of their own.
func NewTablesClient(httpClient *internalhttp.Client) *TablesClient {
	return &TablesClient{httpClient: httpClient}
}

// Columns implements grist.TablesClient.Columns.
func (c *TablesClient) Columns(ctx context.Context, docID, tableID string) ([]grist.Column, error) {
	path := internalhttp.JoinURL(docID, "tables", tableID, "columns")

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing columns of table %s: %w", tableID, err)
	}

	var envelope grist.ColumnsEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing columns: %w", err)
	}

	return envelope.Columns, nil
}

// DownloadCSV implements grist.TablesClient.DownloadCSV. The export endpoint
// lives on the document, with the table selected by query parameter.
func (c *TablesClient) DownloadCSV(ctx context.Context, docID, tableID string) ([]byte, error) {
	path := internalhttp.JoinURL(docID, "download", "csv")
	query := url.Values{}
	query.Set("tableId", tableID)

	resp, err := c.httpClient.GetRaw(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("downloading table %s as CSV: %w", tableID, err)
	}

	return resp.Body, nil
}
