package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	internalhttp "github.com/gristlabs/grist-go/internal/http"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// AttachmentsClient implements the grist.AttachmentsClient interface.
type AttachmentsClient struct {
	httpClient *internalhttp.Client
}

// NewAttachmentsClient creates a new attachments client over a transport
// scoped to the docs collection.
func NewAttachmentsClient(httpClient *internalhttp.Client) *AttachmentsClient {
	return &AttachmentsClient{httpClient: httpClient}
}

// List implements grist.AttachmentsClient.List. Attachment metadata comes
// back in the records envelope, with the metadata as fields.
func (c *AttachmentsClient) List(ctx context.Context, docID string, opts *grist.ListOptions) ([]grist.Record, error) {
	query, err := opts.ToValues()
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, internalhttp.JoinURL(docID, "attachments"), query)
	if err != nil {
		return nil, fmt.Errorf("listing attachments of document %s: %w", docID, err)
	}

	var envelope grist.RecordsEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing attachments: %w", err)
	}

	return envelope.Records, nil
}

// Get implements grist.AttachmentsClient.Get.
func (c *AttachmentsClient) Get(ctx context.Context, docID string, attachmentID int64) (*grist.Attachment, error) {
	path := attachmentPath(docID, attachmentID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting attachment %d: %w", attachmentID, err)
	}

	var attachment grist.Attachment
	if err := json.Unmarshal(resp.Body, &attachment); err != nil {
		return nil, fmt.Errorf("parsing attachment: %w", err)
	}

	return &attachment, nil
}

// Download implements grist.AttachmentsClient.Download.
func (c *AttachmentsClient) Download(ctx context.Context, docID string, attachmentID int64) ([]byte, error) {
	path := internalhttp.JoinURL(attachmentPath(docID, attachmentID), "download")

	resp, err := c.httpClient.GetRaw(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("downloading attachment %d: %w", attachmentID, err)
	}

	return resp.Body, nil
}

// Upload implements grist.AttachmentsClient.Upload. Uploads require a
// multipart body the client does not build yet.
func (c *AttachmentsClient) Upload(ctx context.Context, docID string) error {
	return grist.ErrNotImplemented
}

func attachmentPath(docID string, attachmentID int64) string {
	return internalhttp.JoinURL(docID, "attachments", strconv.FormatInt(attachmentID, 10))
}
