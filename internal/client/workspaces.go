package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	internalhttp "github.com/gristlabs/grist-go/internal/http"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// WorkspacesClient implements the grist.WorkspacesClient interface.
type WorkspacesClient struct {
	accessBase
}

// NewWorkspacesClient creates a new workspaces client over a transport scoped
// to the workspaces collection.
func NewWorkspacesClient(httpClient *internalhttp.Client) *WorkspacesClient {
	return &WorkspacesClient{accessBase{httpClient: httpClient}}
}

// Get implements grist.WorkspacesClient.Get.
func (c *WorkspacesClient) Get(ctx context.Context, workspaceID int64) (*grist.Workspace, error) {
	resp, err := c.httpClient.Get(ctx, workspacePath(workspaceID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting workspace %d: %w", workspaceID, err)
	}

	var workspace grist.Workspace
	if err := json.Unmarshal(resp.Body, &workspace); err != nil {
		return nil, fmt.Errorf("parsing workspace: %w", err)
	}

	return &workspace, nil
}

// Update implements grist.WorkspacesClient.Update.
func (c *WorkspacesClient) Update(ctx context.Context, workspaceID int64, name string) error {
	body := map[string]interface{}{"name": name}

	_, err := c.httpClient.Patch(ctx, workspacePath(workspaceID), body)
	if err != nil {
		return fmt.Errorf("renaming workspace %d: %w", workspaceID, err)
	}

	return nil
}

// Delete implements grist.WorkspacesClient.Delete.
func (c *WorkspacesClient) Delete(ctx context.Context, workspaceID int64) error {
	_, err := c.httpClient.Delete(ctx, workspacePath(workspaceID))
	if err != nil {
		return fmt.Errorf("deleting workspace %d: %w", workspaceID, err)
	}

	return nil
}

// ListUsers implements grist.WorkspacesClient.ListUsers.
func (c *WorkspacesClient) ListUsers(ctx context.Context, workspaceID int64) (*grist.AccessList, error) {
	return c.listUsers(ctx, workspacePath(workspaceID))
}

// UpdateAccess implements grist.WorkspacesClient.UpdateAccess.
func (c *WorkspacesClient) UpdateAccess(ctx context.Context, workspaceID int64, delta *grist.AccessDelta) error {
	return c.updateAccess(ctx, workspacePath(workspaceID), delta)
}

// CreateDoc implements grist.WorkspacesClient.CreateDoc. The API responds
// with the string ID of the new document.
func (c *WorkspacesClient) CreateDoc(ctx context.Context, workspaceID int64, name string, pinned bool) (string, error) {
	path := internalhttp.JoinURL(workspacePath(workspaceID), "docs")
	body := map[string]interface{}{
		"name":     name,
		"isPinned": pinned,
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return "", fmt.Errorf("creating document in workspace %d: %w", workspaceID, err)
	}

	if resp == nil {
		// Dry-run: the request was suppressed.
		return "", nil
	}

	var docID string
	if err := json.Unmarshal(resp.Body, &docID); err != nil {
		return "", fmt.Errorf("parsing document ID: %w", err)
	}

	return docID, nil
}

func workspacePath(workspaceID int64) string {
	return strconv.FormatInt(workspaceID, 10)
}
