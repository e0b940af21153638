package client

import (
	"context"
	"encoding/json"
	"fmt"

	internalhttp "github.com/gristlabs/grist-go/internal/http"
	"github.com/gristlabs/grist-go/pkg/grist"
)

// accessBase implements the shared access-list operations available on
// organizations, workspaces, and documents. Resource clients embed it and
// pass the path of the owning resource relative to their scoped transport.
type accessBase struct {
	httpClient *internalhttp.Client
}

// accessDeltaEnvelope is the wire format of PATCH .../access:
// {"delta": {"users": {...}, "maxInheritedRole": ...}}.
type accessDeltaEnvelope struct {
	Delta *grist.AccessDelta `json:"delta"`
}

// listUsers fetches the access list of the resource at resourcePath.
func (b *accessBase) listUsers(ctx context.Context, resourcePath string) (*grist.AccessList, error) {
	resp, err := b.httpClient.Get(ctx, internalhttp.JoinURL(resourcePath, "access"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing access: %w", err)
	}

	var access grist.AccessList
	if err := json.Unmarshal(resp.Body, &access); err != nil {
		return nil, fmt.Errorf("parsing access list: %w", err)
	}

	return &access, nil
}

// updateAccess patches the access list of the resource at resourcePath.
func (b *accessBase) updateAccess(ctx context.Context, resourcePath string, delta *grist.AccessDelta) error {
	path := internalhttp.JoinURL(resourcePath, "access")

	_, err := b.httpClient.Patch(ctx, path, &accessDeltaEnvelope{Delta: delta})
	if err != nil {
		return fmt.Errorf("updating access: %w", err)
	}

	return nil
}
