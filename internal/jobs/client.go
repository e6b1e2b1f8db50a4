// Package jobs is the client for the job application tracker service.
// Filtering and sorting happen on the server; the client keeps no copy.
package jobs

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"unifiedai/internal/models"
	"unifiedai/internal/transport"
)

const pathJobs = "api/jobs"

type SortOrder string

const (
	SortDateDesc SortOrder = "date_desc"
	SortDateAsc  SortOrder = "date_asc"
)

// Filter narrows the listing. An empty Status means every status.
type Filter struct {
	Status string
	Sort   SortOrder
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Sort != "" {
		q.Set("sort", string(f.Sort))
	}
	return q
}

type Client struct {
	rest openai.Client
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{rest: transport.New(baseURL, timeout, nil, logger)}
}

func (c *Client) List(ctx context.Context, f Filter) ([]models.Job, error) {
	path := pathJobs
	if q := f.query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var raw []byte
	if err := c.rest.Get(ctx, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return parseJobs(raw), nil
}

func (c *Client) Create(ctx context.Context, job models.Job) error {
	job.ID = ""
	if err := c.rest.Post(ctx, pathJobs, job, nil); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	return nil
}

type statusUpdate struct {
	Status string `json:"status"`
}

// UpdateStatus changes only the status of a job.
func (c *Client) UpdateStatus(ctx context.Context, id models.ID, status string) error {
	if err := c.rest.Put(ctx, jobPath(id), statusUpdate{Status: status}, nil); err != nil {
		return fmt.Errorf("update job %s: %w", id, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, id models.ID) error {
	if err := c.rest.Delete(ctx, jobPath(id), nil, nil); err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	return nil
}

func jobPath(id models.ID) string {
	return pathJobs + "/" + url.PathEscape(string(id))
}

// parseJobs accepts a bare array or one wrapped under data or jobs, and
// either id or _id.
func parseJobs(raw []byte) []models.Job {
	list := gjson.ParseBytes(raw)
	if !list.IsArray() {
		for _, p := range []string{"data", "jobs", "data.jobs"} {
			if r := list.Get(p); r.IsArray() {
				list = r
				break
			}
		}
	}
	out := []models.Job{}
	if !list.IsArray() {
		return out
	}
	list.ForEach(func(_, v gjson.Result) bool {
		id := v.Get("id")
		if !id.Exists() {
			id = v.Get("_id")
		}
		out = append(out, models.Job{
			ID:      models.ID(id.String()),
			Company: v.Get("company").String(),
			Role:    v.Get("role").String(),
			Status:  v.Get("status").String(),
			Date:    v.Get("date").String(),
			Link:    v.Get("link").String(),
		})
		return true
	})
	return out
}
