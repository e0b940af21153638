package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	internalhttp "github.com/gristlabs/grist-go/internal/http"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// OrgsClient implements the grist.OrgsClient interface.
type OrgsClient struct {
	accessBase
}

// NewOrgsClient creates a new orgs client over a transport scoped to the
// orgs collection.
func NewOrgsClient(httpClient *internalhttp.Client) *OrgsClient {
	return &OrgsClient{accessBase{httpClient: httpClient}}
}

// List implements grist.OrgsClient.List.
func (c *OrgsClient) List(ctx context.Context) ([]grist.Org, error) {
	resp, err := c.httpClient.Get(ctx, "", nil)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	var orgs []grist.Org
	if err := json.Unmarshal(resp.Body, &orgs); err != nil {
		return nil, fmt.Errorf("parsing organizations: %w", err)
	}

	return orgs, nil
}

// Get implements grist.OrgsClient.Get.
func (c *OrgsClient) Get(ctx context.Context, orgID int64) (*grist.Org, error) {
	resp, err := c.httpClient.Get(ctx, orgPath(orgID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting organization %d: %w", orgID, err)
	}

	var org grist.Org
	if err := json.Unmarshal(resp.Body, &org); err != nil {
		return nil, fmt.Errorf("parsing organization: %w", err)
	}

	return &org, nil
}

// Update implements grist.OrgsClient.Update.
func (c *OrgsClient) Update(ctx context.Context, orgID int64, name string) error {
	body := map[string]interface{}{"name": name}

	_, err := c.httpClient.Patch(ctx, orgPath(orgID), body)
	if err != nil {
		return fmt.Errorf("renaming organization %d: %w", orgID, err)
	}

	return nil
}

// Delete implements grist.OrgsClient.Delete.
func (c *OrgsClient) Delete(ctx context.Context, orgID int64) error {
	_, err := c.httpClient.Delete(ctx, orgPath(orgID))
	if err != nil {
		return fmt.Errorf("deleting organization %d: %w", orgID, err)
	}

	return nil
}

// ListUsers implements grist.OrgsClient.ListUsers.
func (c *OrgsClient) ListUsers(ctx context.Context, orgID int64) (*grist.AccessList, error) {
	return c.listUsers(ctx, orgPath(orgID))
}

// UpdateAccess implements grist.OrgsClient.UpdateAccess. Organizations only
// accept user/role pairs in their delta, never maxInheritedRole.
func (c *OrgsClient) UpdateAccess(ctx context.Context, orgID int64, users map[string]*string) error {
	return c.updateAccess(ctx, orgPath(orgID), &grist.AccessDelta{Users: users})
}

// ListWorkspaces implements grist.OrgsClient.ListWorkspaces.
func (c *OrgsClient) ListWorkspaces(ctx context.Context, orgID int64) ([]grist.Workspace, error) {
	resp, err := c.httpClient.Get(ctx, internalhttp.JoinURL(orgPath(orgID), "workspaces"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing workspaces of organization %d: %w", orgID, err)
	}

	var workspaces []grist.Workspace
	if err := json.Unmarshal(resp.Body, &workspaces); err != nil {
		return nil, fmt.Errorf("parsing workspaces: %w", err)
	}

	return workspaces, nil
}

// CreateWorkspace implements grist.OrgsClient.CreateWorkspace. The API
// responds with the numeric ID of the new workspace.
func (c *OrgsClient) CreateWorkspace(ctx context.Context, orgID int64, name string) (int64, error) {
	path := internalhttp.JoinURL(orgPath(orgID), "workspaces")
	body := map[string]interface{}{"name": name}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return 0, fmt.Errorf("creating workspace in organization %d: %w", orgID, err)
	}

	if resp == nil {
		// Dry-run: the request was suppressed.
		return 0, nil
	}

	var workspaceID int64
	if err := json.Unmarshal(resp.Body, &workspaceID); err != nil {
		return 0, fmt.Errorf("parsing workspace ID: %w", err)
	}

	return workspaceID, nil
}

func orgPath(orgID int64) string {
	return strconv.FormatInt(orgID, 10)
}
