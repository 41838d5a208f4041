// Package drive publishes artifacts to Google Drive.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/brian-kiplagat/image-resizer/internal/domain"
	"github.com/brian-kiplagat/image-resizer/internal/infra/credentials"
)

// Client moves artifacts between the pending and confirmed Drive folders.
type Client struct {
	svc         *drive.Service
	pendingID   string
	confirmedID string
}

// NewClient builds a Drive client authenticated with the service account.
func NewClient(ctx context.Context, sa *credentials.ServiceAccount, pendingFolderID, confirmedFolderID string) (*Client, error) {
	if pendingFolderID == "" || confirmedFolderID == "" {
		return nil, errors.New("drive: pending and confirmed folder ids are required")
	}
	cfg, err := sa.JWTConfig(drive.DriveScope)
	if err != nil {
		return nil, err
	}
	svc, err := drive.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("drive: new service: %w", err)
	}
	return &Client{svc: svc, pendingID: pendingFolderID, confirmedID: confirmedFolderID}, nil
}

// Upload stores the bytes under the pending folder and returns the file id
// and view link.
func (c *Client) Upload(ctx context.Context, data []byte, name, mimeType string) (domain.Artifact, error) {
	meta := &drive.File{Name: name, Parents: []string{c.pendingID}}
	created, err := c.svc.Files.Create(meta).
		Media(bytes.NewReader(data)).
		Fields("id", "name", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("%w: drive upload %q: %v", domain.ErrPublish, name, wrapTimeout(ctx, err))
	}
	return domain.Artifact{ID: created.Id, Name: created.Name, Link: created.WebViewLink}, nil
}

// ListPending returns pending artifacts whose name contains the fragment.
func (c *Client) ListPending(ctx context.Context, nameContains string) ([]domain.Artifact, error) {
	q := fmt.Sprintf("name contains '%s' and '%s' in parents and trashed = false",
		escapeQueryTerm(nameContains), c.pendingID)
	list, err := c.svc.Files.List().
		Q(q).
		Fields("files(id, name, webViewLink)").
		PageSize(100).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: drive list: %v", domain.ErrPublish, wrapTimeout(ctx, err))
	}
	out := make([]domain.Artifact, 0, len(list.Files))
	for _, f := range list.Files {
		out = append(out, domain.Artifact{ID: f.Id, Name: f.Name, Link: f.WebViewLink})
	}
	return out, nil
}

// MoveToConfirmed reparents a file from the pending to the confirmed folder.
func (c *Client) MoveToConfirmed(ctx context.Context, artifactID string) error {
	_, err := c.svc.Files.Update(artifactID, nil).
		AddParents(c.confirmedID).
		RemoveParents(c.pendingID).
		Fields("id", "parents").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: drive move %s: %v", domain.ErrPublish, artifactID, wrapTimeout(ctx, err))
	}
	return nil
}

// escapeQueryTerm escapes quotes in a Drive query literal.
func escapeQueryTerm(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `'`, `\'`)
}

func wrapTimeout(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return err
}

var _ domain.Publisher = (*Client)(nil)
