// Package client implements the grist.Client resource tree on top of the
// internal transport. Each resource client holds a transport handle scoped
// to its own collection path and forwards verb+path+payload; every failure
// mode is the transport's.
package client

import (
	internalhttp "github.com/gristlabs/grist-go/internal/http"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// Client implements the grist.Client interface.
type Client struct {
	httpClient *internalhttp.Client

	orgs        grist.OrgsClient
	workspaces  grist.WorkspacesClient
	docs        grist.DocsClient
	tables      grist.TablesClient
	records     grist.RecordsClient
	attachments grist.AttachmentsClient
}

// New creates a client over a transport already scoped to the API base path.
func New(httpClient *internalhttp.Client) *Client {
	client := &Client{httpClient: httpClient}
	client.initializeResourceClients()

	return client
}

// Orgs implements grist.Client.Orgs.
func (c *Client) Orgs() grist.OrgsClient {
	return c.orgs
}

// Workspaces implements grist.Client.Workspaces.
func (c *Client) Workspaces() grist.WorkspacesClient {
	return c.workspaces
}

// Docs implements grist.Client.Docs.
func (c *Client) Docs() grist.DocsClient {
	return c.docs
}

// Tables implements grist.Client.Tables.
func (c *Client) Tables() grist.TablesClient {
	return c.tables
}

// Records implements grist.Client.Records.
func (c *Client) Records() grist.RecordsClient {
	return c.records
}

// Attachments implements grist.Client.Attachments.
func (c *Client) Attachments() grist.AttachmentsClient {
	return c.attachments
}

// Close implements grist.Client.Close.
func (c *Client) Close() {
	c.httpClient.Close()
}

// initializeResourceClients scopes one transport handle per resource kind.
// Tables, records, and attachments all live under the docs collection.
func (c *Client) initializeResourceClients() {
	c.orgs = NewOrgsClient(c.httpClient.Child("orgs"))
	c.workspaces = NewWorkspacesClient(c.httpClient.Child("workspaces"))
	c.docs = NewDocsClient(c.httpClient.Child("docs"))
	c.tables = NewTablesClient(c.httpClient.Child("docs"))
	c.records = NewRecordsClient(c.httpClient.Child("docs"))
	c.attachments = NewAttachmentsClient(c.httpClient.Child("docs"))
}
