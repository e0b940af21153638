package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	internalhttp "github.com/gristlabs/grist-go/internal/http"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// RecordsClient implements the grist.RecordsClient interface.
type RecordsClient struct {
	httpClient *internalhttp.Client
}

// NewRecordsClient creates a new records client over a transport scoped to
// the docs collection.
func NewRecordsClient(httpClient *internalhttp.Client) *RecordsClient {
	return &RecordsClient{httpClient: httpClient}
}

// createRecord is the wire format of one record in POST .../records: fields
// only, the server assigns the ID.
type createRecord struct {
	Fields grist.Fields `json:"fields"`
}

// upsertRecord is the wire format of one record in PUT .../records: the
// require object selects the matching row, fields holds the values to write.
type upsertRecord struct {
	Require grist.Fields `json:"require"`
	Fields  grist.Fields `json:"fields,omitempty"`
}

// List implements grist.RecordsClient.List.
func (c *RecordsClient) List(ctx context.Context, docID, tableID string, opts *grist.ListOptions) ([]grist.Record, error) {
	query, err := opts.ToValues()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, recordsPath(docID, tableID), query)
	if err != nil {
		return nil, fmt.Errorf("listing records of table %s: %w", tableID, err)
	}

	var envelope grist.RecordsEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}

	return envelope.Records, nil
}

// Create implements grist.RecordsClient.Create. The response carries the IDs
// the server assigned, in input order.
func (c *RecordsClient) Create(ctx context.Context, docID, tableID string, records []grist.Fields, opts *grist.RecordWriteOptions) ([]grist.Record, error) {
	payload := make([]createRecord, 0, len(records))
	for _, fields := range records {
		payload = append(payload, createRecord{Fields: fields})
	}

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   recordsPath(docID, tableID),
		Query:  opts.ToValues(),
		Body:   map[string]interface{}{"records": payload},
	})
	if err != nil {
		return nil, fmt.Errorf("creating records in table %s: %w", tableID, err)
	}

	if resp == nil {
		// Dry-run: the request was suppressed.
		return nil, nil
	}

	var envelope grist.RecordsEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing created records: %w", err)
	}

	return envelope.Records, nil
}

// Update implements grist.RecordsClient.Update. Every record must carry its
// row ID; the check happens before any request is sent.
func (c *RecordsClient) Update(ctx context.Context, docID, tableID string, records []grist.Record, opts *grist.RecordWriteOptions) error {
	for i, record := range records {
		if record.ID == 0 {
			return fmt.Errorf("record %d: %w", i, grist.ErrRecordIDRequired)
		}
	}

	_, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPatch,
		Path:   recordsPath(docID, tableID),
		Query:  opts.ToValues(),
		Body:   map[string]interface{}{"records": records},
	})
	if err != nil {
		return fmt.Errorf("updating records in table %s: %w", tableID, err)
	}

	return nil
}

// CreateOrUpdate implements grist.RecordsClient.CreateOrUpdate. The key
// columns of each record form the require object matching existing rows; the
// remaining columns are written either way.
func (c *RecordsClient) CreateOrUpdate(ctx context.Context, docID, tableID string, records []grist.Record, keys []string, opts *grist.RecordWriteOptions) error {
	keySet := make(map[string]bool, len(keys))
	for _, key := range keys {
		keySet[key] = true
	}

	payload := make([]upsertRecord, 0, len(records))

	for _, record := range records {
		upsert := upsertRecord{
			Require: make(grist.Fields),
			Fields:  make(grist.Fields),
		}

		for column, value := range record.Fields {
			if keySet[column] {
				upsert.Require[column] = value
			} else {
				upsert.Fields[column] = value
			}
		}

		payload = append(payload, upsert)
	}

	_, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPut,
		Path:   recordsPath(docID, tableID),
		Query:  opts.ToValues(),
		Body:   map[string]interface{}{"records": payload},
	})
	if err != nil {
		return fmt.Errorf("upserting records in table %s: %w", tableID, err)
	}

	return nil
}

// Delete implements grist.RecordsClient.Delete. Deletion goes through the
// data/delete endpoint, which takes a bare JSON array of row IDs.
func (c *RecordsClient) Delete(ctx context.Context, docID, tableID string, rowIDs []int64) error {
	path := internalhttp.JoinURL(docID, "tables", tableID, "data", "delete")

	_, err := c.httpClient.Post(ctx, path, rowIDs)
	if err != nil {
		return fmt.Errorf("deleting records from table %s: %w", tableID, err)
	}

	return nil
}

func recordsPath(docID, tableID string) string {
	return internalhttp.JoinURL(docID, "tables", tableID, "records")
}
