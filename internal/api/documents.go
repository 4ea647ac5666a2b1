package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
)

// CreateDocumentRequest is the POST /api/documents body. Sections may be
// nil, in which case the backend seeds its defaults.
type CreateDocumentRequest struct {
	Title    string           `json:"title"`
	Label    string           `json:"label,omitempty"`
	Sections []resume.Section `json:"sections,omitempty"`
}

// UpdateDocumentRequest is the PUT /api/documents/{id} body. An empty
// Label clears the document's label.
type UpdateDocumentRequest struct {
	Title    string           `json:"title"`
	Sections []resume.Section `json:"sections"`
	Label    string           `json:"label"`
}

func docPath(id string) string {
	return "/api/documents/" + url.PathEscape(id)
}

func (c *Client) ListDocuments(ctx context.Context) ([]resume.Document, error) {
	var out []resume.Document
	if err := c.do(ctx, http.MethodGet, "/api/documents", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDocument(ctx context.Context, id string) (resume.Document, error) {
	var out resume.Document
	err := c.do(ctx, http.MethodGet, docPath(id), nil, &out)
	return out, err
}

func (c *Client) CreateDocument(ctx context.Context, req CreateDocumentRequest) (resume.Document, error) {
	var out resume.Document
	err := c.do(ctx, http.MethodPost, "/api/documents", req, &out)
	return out, err
}

func (c *Client) UpdateDocument(ctx context.Context, id string, req UpdateDocumentRequest) (resume.Document, error) {
	if req.Sections == nil {
		req.Sections = []resume.Section{}
	}
	var out resume.Document
	err := c.do(ctx, http.MethodPut, docPath(id), req, &out)
	return out, err
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, docPath(id), nil, nil)
}

func (c *Client) ListVersions(ctx context.Context, id string) ([]resume.Version, error) {
	var out []resume.Version
	if err := c.do(ctx, http.MethodGet, docPath(id)+"/versions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RestoreVersion returns the document as restored.
func (c *Client) RestoreVersion(ctx context.Context, id string, version int) (resume.Document, error) {
	var out resume.Document
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/versions/%d/restore", docPath(id), version), nil, &out)
	return out, err
}
