package grist

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// ListOptions holds the optional parameters of record list operations. A zero
// field is treated as "not supplied" and never appears in the outgoing query:
// nil Filters, empty SortBy, and zero Limit are all omitted rather than sent
// as empty values.
type ListOptions struct {
	// Filters restricts the result to records whose column value appears in
	// the given list, e.g. {"pet": ["cat", "dog"]}. Serialized as a single
	// JSON string under the "filters" query parameter.
	Filters map[string]interface{}

	// SortBy is a comma-separated column list, "-" prefix for descending.
	SortBy string

	// Limit caps the number of returned records.
	Limit int
}

// NewListOptions creates an empty ListOptions.
func NewListOptions() *ListOptions {
	return &ListOptions{}
}

// WithFilter restricts a column to the given values.
func (o *ListOptions) WithFilter(column string, values ...interface{}) *ListOptions {
	if o.Filters == nil {
		o.Filters = make(map[string]interface{})
	}

	o.Filters[column] = values

	return o
}

// WithSort sets the sort specification.
func (o *ListOptions) WithSort(sortBy string) *ListOptions {
	o.SortBy = sortBy

	return o
}

// WithLimit sets the record limit.
func (o *ListOptions) WithLimit(limit int) *ListOptions {
	o.Limit = limit

	return o
}

// ToValues converts the options to URL query values, omitting unset fields.
func (o *ListOptions) ToValues() (url.Values, error) {
	values := url.Values{}
	if o == nil {
		return values, nil
	}

	if o.Filters != nil {
		data, err := json.Marshal(o.Filters)
		if err != nil {
			return nil, fmt.Errorf("serializing filters: %w", err)
		}

		values.Set("filters", string(data))
	}

	if o.SortBy != "" {
		values.Set("sort_by", o.SortBy)
	}

	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}

	return values, nil
}

// RecordWriteOptions holds the optional parameters of record create/update
// operations.
type RecordWriteOptions struct {
	// NoParse disables server-side parsing of string cell values into richer
	// types. The query parameter is only sent when set.
	NoParse bool
}

// ToValues converts the options to URL query values, omitting unset fields.
func (o *RecordWriteOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.NoParse {
		values.Set("noparse", "true")
	}

	return values
}

// DocUpdate is a partial update of a document. Nil fields are left untouched
// by the server; pointers keep "unset" distinct from an explicit zero value
// (e.g. unpinning requires IsPinned pointing at false).
type DocUpdate struct {
	Name     *string `json:"name,omitempty"`
	IsPinned *bool   `json:"isPinned,omitempty"`
}

// NewDocUpdate creates an empty DocUpdate.
func NewDocUpdate() *DocUpdate {
	return &DocUpdate{}
}

// WithName sets the document name.
func (u *DocUpdate) WithName(name string) *DocUpdate {
	u.Name = &name

	return u
}

// WithPinned sets the pinned flag.
func (u *DocUpdate) WithPinned(pinned bool) *DocUpdate {
	u.IsPinned = &pinned

	return u
}

// AccessDelta is a partial update of an access list, sent inside the
// {"delta": {...}} envelope. Only explicitly supplied sub-fields are
// serialized. A nil role for a user marshals to JSON null, which removes
// that user, as opposed to not mentioning the user at all.
type AccessDelta struct {
	Users            map[string]*string `json:"users,omitempty"`
	MaxInheritedRole *string            `json:"maxInheritedRole,omitempty"`
}

// NewAccessDelta creates an empty AccessDelta.
func NewAccessDelta() *AccessDelta {
	return &AccessDelta{}
}

// WithUser sets the role of one user, e.g. "owners", "editors", "viewers".
func (d *AccessDelta) WithUser(email, role string) *AccessDelta {
	if d.Users == nil {
		d.Users = make(map[string]*string)
	}

	d.Users[email] = &role

	return d
}

// WithUserRemoved removes one user from the access list.
func (d *AccessDelta) WithUserRemoved(email string) *AccessDelta {
	if d.Users == nil {
		d.Users = make(map[string]*string)
	}

	d.Users[email] = nil

	return d
}

// WithMaxInheritedRole caps the role inherited from the parent resource.
func (d *AccessDelta) WithMaxInheritedRole(role string) *AccessDelta {
	d.MaxInheritedRole = &role

	return d
}
