package grist

import (
	"context"
	"net/http"
	"time"
)

// OrgsClient provides access to organizations and their workspaces.
type OrgsClient interface {
	List(ctx context.Context) ([]Org, error)
	Get(ctx context.Context, orgID int64) (*Org, error)
	Update(ctx context.Context, orgID int64, name string) error
	Delete(ctx context.Context, orgID int64) error
	ListUsers(ctx context.Context, orgID int64) (*AccessList, error)
	// UpdateAccess patches the organization access list. Organizations do not
	// support maxInheritedRole, so only user/role pairs are accepted here.
	UpdateAccess(ctx context.Context, orgID int64, users map[string]*string) error
	ListWorkspaces(ctx context.Context, orgID int64) ([]Workspace, error)
	CreateWorkspace(ctx context.Context, orgID int64, name string) (int64, error)
}

// WorkspacesClient provides access to workspaces and their documents.
type WorkspacesClient interface {
	Get(ctx context.Context, workspaceID int64) (*Workspace, error)
	Update(ctx context.Context, workspaceID int64, name string) error
	Delete(ctx context.Context, workspaceID int64) error
	ListUsers(ctx context.Context, workspaceID int64) (*AccessList, error)
	UpdateAccess(ctx context.Context, workspaceID int64, delta *AccessDelta) error
	CreateDoc(ctx context.Context, workspaceID int64, name string, pinned bool) (string, error)
}

// DocsClient provides access to documents.
type DocsClient interface {
	Get(ctx context.Context, docID string) (*Doc, error)
	Update(ctx context.Context, docID string, update *DocUpdate) error
	Move(ctx context.Context, docID string, workspaceID int64) error
	Delete(ctx context.Context, docID string) error
	ListUsers(ctx context.Context, docID string) (*AccessList, error)
	UpdateAccess(ctx context.Context, docID string, delta *AccessDelta) error
	// Download fetches the document as a SQLite database.
	Download(ctx context.Context, docID string) ([]byte, error)
	DownloadXLSX(ctx context.Context, docID string) ([]byte, error)
	DownloadCSV(ctx context.Context, docID, tableID string) ([]byte, error)
}

// TablesClient provides access to tables within a document.
type TablesClient interface {
	Columns(ctx context.Context, docID, tableID string) ([]Column, error)
	DownloadCSV(ctx context.Context, docID, tableID string) ([]byte, error)
}

// RecordsClient provides access to the records of one table.
type RecordsClient interface {
	List(ctx context.Context, docID, tableID string, opts *ListOptions) ([]Record, error)
	Create(ctx context.Context, docID, tableID string, records []Fields, opts *RecordWriteOptions) ([]Record, error)
	// Update modifies existing records. Every record must carry a non-zero ID;
	// a missing ID fails with ErrRecordIDRequired before any request is sent.
	Update(ctx context.Context, docID, tableID string, records []Record, opts *RecordWriteOptions) error
	CreateOrUpdate(ctx context.Context, docID, tableID string, records []Record, keys []string, opts *RecordWriteOptions) error
	Delete(ctx context.Context, docID, tableID string, rowIDs []int64) error
}

// AttachmentsClient provides access to document attachments.
type AttachmentsClient interface {
	List(ctx context.Context, docID string, opts *ListOptions) ([]Record, error)
	Get(ctx context.Context, docID string, attachmentID int64) (*Attachment, error)
	Download(ctx context.Context, docID string, attachmentID int64) ([]byte, error)
	// Upload is not implemented; it always returns ErrNotImplemented.
	Upload(ctx context.Context, docID string) error
}

// Client is the entry point to the Grist API. Implementations are created via
// the gristclient package.
type Client interface {
	Orgs() OrgsClient
	Workspaces() WorkspacesClient
	Docs() DocsClient
	Tables() TablesClient
	Records() RecordsClient
	Attachments() AttachmentsClient

	// Close releases idle connections of the shared HTTP session. It is
	// idempotent and safe to call from any handle sharing the session.
	Close()
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a grist.Client.
//
// # Authentication
//
// The API key is resolved in order: Config.APIKey, the GRIST_API_KEY
// environment variable, then the ~/.grist-api-key file. If none yields a key
// and no HTTPClient is supplied, construction fails with ErrAPIKeyNotFound.
// Supplying both APIKey and HTTPClient is a configuration error
// (ErrKeyAndSessionConflict): a pre-built session is expected to carry its
// own Authorization header.
//
// # Retries
//
// Transient failures (connection errors, 502/503/504, backend contention)
// are retried up to RetryMax additional attempts with a fixed pause between
// attempts. The defaults match the service's recommended policy: 5 attempts
// total, 1 second apart.
type Config struct {
	// Server is the base server URL, e.g. "https://docs.getgrist.com".
	// A missing scheme defaults to https and a trailing slash is trimmed.
	Server string

	// BasePath is the API prefix under Server. Defaults to "/api".
	BasePath string

	// APIKey is the bearer token for the Authorization header.
	APIKey string

	// HTTPClient is an optional pre-built session shared with other clients.
	// Mutually exclusive with APIKey.
	HTTPClient *http.Client

	// DryRun suppresses all mutating calls; reads still execute.
	DryRun bool

	// Debug enables request/response logging when a Logger is provided.
	Debug bool

	// Logger is an optional structured logger used by the transport.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// RetryMax is the number of retries after the first attempt. 0 means the
	// default of 4 (5 attempts total).
	RetryMax int

	// RetryWaitMin and RetryWaitMax bound the pause between attempts. With
	// the defaults both are 1 second, giving the fixed inter-retry pause.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// HTTPTimeout is the per-request timeout of a session the client builds
	// itself. Ignored when HTTPClient is supplied.
	HTTPTimeout time.Duration
}
