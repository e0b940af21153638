package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	internalhttp "github.com/gristlabs/grist-go/internal/http"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// DocsClient implements the grist.DocsClient interface.
type DocsClient struct {
	accessBase
}

// NewDocsClient creates a new docs client over a transport scoped to the docs
// collection.
func NewDocsClient(httpClient *internalhttp.Client) *DocsClient {
	return &DocsClient{accessBase{httpClient: httpClient}}
}

// Get implements grist.DocsClient.Get.
func (c *DocsClient) Get(ctx context.Context, docID string) (*grist.Doc, error) {
	resp, err := c.httpClient.Get(ctx, docID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting document %s: %w", docID, err)
	}

	var doc grist.Doc
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	return &doc, nil
}

// Update implements grist.DocsClient.Update.
func (c *DocsClient) Update(ctx context.Context, docID string, update *grist.DocUpdate) error {
	_, err := c.httpClient.Patch(ctx, docID, update)
	if err != nil {
		return fmt.Errorf("updating document %s: %w", docID, err)
	}

	return nil
}

// Move implements grist.DocsClient.Move.
func (c *DocsClient) Move(ctx context.Context, docID string, workspaceID int64) error {
	path := internalhttp.JoinURL(docID, "move")
	body := map[string]interface{}{"workspace": workspaceID}

	_, err := c.httpClient.Patch(ctx, path, body)
	if err != nil {
		return fmt.Errorf("moving document %s to workspace %d: %w", docID, workspaceID, err)
	}

	return nil
}

// Delete implements grist.DocsClient.Delete.
func (c *DocsClient) Delete(ctx context.Context, docID string) error {
	_, err := c.httpClient.Delete(ctx, docID)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", docID, err)
	}

	return nil
}

// ListUsers implements grist.DocsClient.ListUsers.
func (c *DocsClient) ListUsers(ctx context.Context, docID string) (*grist.AccessList, error) {
	return c.listUsers(ctx, docID)
}

// UpdateAccess implements grist.DocsClient.UpdateAccess.
func (c *DocsClient) UpdateAccess(ctx context.Context, docID string, delta *grist.AccessDelta) error {
	return c.updateAccess(ctx, docID, delta)
}

// Download implements grist.DocsClient.Download. The body is the SQLite
// database backing the document.
func (c *DocsClient) Download(ctx context.Context, docID string) ([]byte, error) {
	return c.download(ctx, internalhttp.JoinURL(docID, "download"), nil)
}

// DownloadXLSX implements grist.DocsClient.DownloadXLSX.
func (c *DocsClient) DownloadXLSX(ctx context.Context, docID string) ([]byte, error) {
	return c.download(ctx, internalhttp.JoinURL(docID, "download", "xlsx"), nil)
}

// DownloadCSV implements grist.DocsClient.DownloadCSV.
func (c *DocsClient) DownloadCSV(ctx context.Context, docID, tableID string) ([]byte, error) {
	query := url.Values{}
	query.Set("tableId", tableID)

	return c.download(ctx, internalhttp.JoinURL(docID, "download", "csv"), query)
}

func (c *DocsClient) download(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.httpClient.GetRaw(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", path, err)
	}

	return resp.Body, nil
}
