package grist

import "time"

// User identifies an account in an access list or as a resource owner.
type User struct {
	ID     int64  `json:"id"               yaml:"id"`
	Name   string `json:"name"             yaml:"name"`
	Email  string `json:"email,omitempty"  yaml:"email,omitempty"`
	Access string `json:"access,omitempty" yaml:"access,omitempty"`
}

// Org represents an organization (a team site).
type Org struct {
	ID        int64     `json:"id"                  yaml:"id"`
	Name      string    `json:"name"                yaml:"name"`
	Domain    string    `json:"domain,omitempty"    yaml:"domain,omitempty"`
	Owner     *User     `json:"owner,omitempty"     yaml:"owner,omitempty"`
	Access    string    `json:"access,omitempty"    yaml:"access,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
}

// Workspace represents a workspace within an organization.
type Workspace struct {
	ID        int64  `json:"id"                  yaml:"id"`
	Name      string `json:"name"                yaml:"name"`
	Access    string `json:"access,omitempty"    yaml:"access,omitempty"`
	OrgDomain string `json:"orgDomain,omitempty" yaml:"orgDomain,omitempty"`
	Docs      []Doc  `json:"docs,omitempty"      yaml:"docs,omitempty"`
}

// Doc represents a document within a workspace.
type Doc struct {
	ID        string     `json:"id"                  yaml:"id"`
	Name      string     `json:"name"                yaml:"name"`
	URLID     string     `json:"urlId,omitempty"     yaml:"urlId,omitempty"`
	Access    string     `json:"access,omitempty"    yaml:"access,omitempty"`
	IsPinned  bool       `json:"isPinned"            yaml:"isPinned"`
	Workspace *Workspace `json:"workspace,omitempty" yaml:"workspace,omitempty"`
}

// Fields holds the cell values of one record, keyed by column ID.
type Fields map[string]interface{}

// Record represents one row of a table.
type Record struct {
	ID     int64  `json:"id"     yaml:"id"`
	Fields Fields `json:"fields" yaml:"fields"`
}

// RecordsEnvelope is the wire format of record collections:
// {"records": [{"id": ..., "fields": {...}}, ...]}.
type RecordsEnvelope struct {
	Records []Record `json:"records"`
}

// Column describes one column of a table.
type Column struct {
	ID     string                 `json:"id"     yaml:"id"`
	Fields map[string]interface{} `json:"fields" yaml:"fields"`
}

// ColumnsEnvelope is the wire format of GET .../columns.
type ColumnsEnvelope struct {
	Columns []Column `json:"columns"`
}

// Attachment holds the metadata of one attachment.
type Attachment struct {
	FileName     string    `json:"fileName"               yaml:"fileName"`
	FileSize     int64     `json:"fileSize"               yaml:"fileSize"`
	TimeUploaded time.Time `json:"timeUploaded,omitempty" yaml:"timeUploaded,omitempty"`
}

// AccessList is the response of GET .../access.
type AccessList struct {
	MaxInheritedRole *string `json:"maxInheritedRole,omitempty" yaml:"maxInheritedRole,omitempty"`
	Users            []User  `json:"users"                      yaml:"users"`
}
