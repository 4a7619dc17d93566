package client

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tunjipaul/folio/pkg/domain"
)

// CurrentDocuments reports which documents are uploaded.
func (c *Client) CurrentDocuments(ctx context.Context) (*domain.ResumeFiles, error) {
	var files domain.ResumeFiles
	if err := c.get(ctx, "/api/resume/current", &files); err != nil {
		return nil, fmt.Errorf("client.CurrentDocuments: %w", err)
	}
	return &files, nil
}

// UploadDocument uploads a PDF into the given slot, replacing any previous one.
func (c *Client) UploadDocument(ctx context.Context, t domain.DocType, filename string, r io.Reader) (*domain.UploadResult, error) {
	if _, err := domain.ParseDocType(string(t)); err != nil {
		return nil, fmt.Errorf("client.UploadDocument: %w", err)
	}
	if err := domain.ValidatePDFName(filename); err != nil {
		return nil, fmt.Errorf("client.UploadDocument: %w", err)
	}
	form := NewForm().
		AddField("type", string(t)).
		AddFile("file", filename, r)

	res, err := c.Upload(ctx, "/api/resume/upload", form)
	if err != nil {
		return nil, fmt.Errorf("client.UploadDocument: %w", err)
	}
	var out domain.UploadResult
	if err := res.Decode(&out); err != nil {
		return nil, fmt.Errorf("client.UploadDocument: %w", err)
	}
	return &out, nil
}

// DownloadDocument fetches the PDF in the given slot.
func (c *Client) DownloadDocument(ctx context.Context, t domain.DocType) (*File, error) {
	f, err := c.Download(ctx, "/api/resume/download/"+url.PathEscape(string(t)))
	if err != nil {
		return nil, fmt.Errorf("client.DownloadDocument: %w", err)
	}
	return f, nil
}

// SaveDocument downloads the document in slot t and writes it into dest,
// or to dest itself when it names a .pdf file. It returns the written path.
func (c *Client) SaveDocument(ctx context.Context, t domain.DocType, dest string) (string, error) {
	f, err := c.DownloadDocument(ctx, t)
	if err != nil {
		return "", err
	}
	path := dest
	if !strings.HasSuffix(strings.ToLower(dest), ".pdf") {
		name := filepath.Base(f.Filename)
		if name == "" || name == "." || name == string(filepath.Separator) {
			name = string(t) + ".pdf"
		}
		path = filepath.Join(dest, name)
	}
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("client.SaveDocument: %w", err)
	}
	return path, nil
}

// DeleteDocument removes the PDF in the given slot.
func (c *Client) DeleteDocument(ctx context.Context, t domain.DocType) error {
	if err := c.delete(ctx, "/api/resume/delete/"+url.PathEscape(string(t))); err != nil {
		return fmt.Errorf("client.DeleteDocument: %w", err)
	}
	return nil
}

// DocumentURL returns the public download link for a slot.
func (c *Client) DocumentURL(t domain.DocType) string {
	return c.baseURL + "/api/resume/download/" + url.PathEscape(string(t))
}
