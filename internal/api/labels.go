package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
)

type LabelRequest struct {
	Name  string       `json:"name"`
	Color resume.Color `json:"color"`
}

func labelPath(id string) string {
	return "/api/labels/" + url.PathEscape(id)
}

func (c *Client) ListLabels(ctx context.Context) ([]resume.Label, error) {
	var out []resume.Label
	if err := c.do(ctx, http.MethodGet, "/api/labels", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateLabel(ctx context.Context, req LabelRequest) (resume.Label, error) {
	var out resume.Label
	err := c.do(ctx, http.MethodPost, "/api/labels", req, &out)
	return out, err
}

func (c *Client) UpdateLabel(ctx context.Context, id string, req LabelRequest) (resume.Label, error) {
	var out resume.Label
	err := c.do(ctx, http.MethodPut, labelPath(id), req, &out)
	return out, err
}

func (c *Client) DeleteLabel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, labelPath(id), nil, nil)
}
