package dataset

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/finbench/pixiu-adapters/pkg/config"
	"github.com/finbench/pixiu-adapters/pkg/logger"
)

// Row is one raw record as served by the dataset host. Field shape depends on
// the dataset variant.
type Row map[string]any

// Client fetches dataset rows from the Hugging Face datasets-server API.
type Client struct {
	http       *resty.Client
	configName string
	pageSize   int
}

// rowsResponse mirrors the /rows endpoint payload.
type rowsResponse struct {
	Rows []struct {
		RowIdx int `json:"row_idx"`
		Row    Row `json:"row"`
	} `json:"rows"`
	NumRowsTotal int `json:"num_rows_total"`
}

// errorResponse mirrors the error body returned on non-2xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// NewClient creates a dataset client from the active configuration.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.HuggingFace.BaseURL).
		SetTimeout(cfg.HuggingFace.Timeout).
		SetHeader("Accept", "application/json")
	if token := cfg.HuggingFace.Token.Value(); token != "" {
		client.SetHeader("Authorization", "Bearer "+token)
	}
	return &Client{
		http:       client,
		configName: cfg.HuggingFace.ConfigName,
		pageSize:   cfg.HuggingFace.PageSize,
	}
}

// Rows fetches a split of the named dataset, preserving server order.
// A limit > 0 caps the number of returned rows; limit <= 0 means no limit.
// Fetch failures abort immediately; there is no retry.
func (c *Client) Rows(ctx context.Context, name, split string, limit int) ([]Row, error) {
	log := logger.FromContext(ctx)
	var rows []Row
	offset := 0
	for {
		length := c.pageSize
		if limit > 0 {
			if remaining := limit - len(rows); remaining < length {
				length = remaining
			}
		}
		if length <= 0 {
			break
		}

		page, err := c.fetchPage(ctx, name, split, offset, length)
		if err != nil {
			return nil, err
		}
		for _, r := range page.Rows {
			rows = append(rows, r.Row)
		}
		log.Debug("fetched rows page",
			"dataset", name,
			"split", split,
			"offset", offset,
			"count", len(page.Rows),
		)

		offset += len(page.Rows)
		if len(page.Rows) < length || (page.NumRowsTotal > 0 && offset >= page.NumRowsTotal) {
			break
		}
		if limit > 0 && len(rows) >= limit {
			break
		}
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (c *Client) fetchPage(ctx context.Context, name, split string, offset, length int) (*rowsResponse, error) {
	var (
		result rowsResponse
		apiErr errorResponse
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"dataset": name,
			"config":  c.configName,
			"split":   split,
			"offset":  strconv.Itoa(offset),
			"length":  strconv.Itoa(length),
		}).
		SetResult(&result).
		SetError(&apiErr).
		Get("/rows")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rows for %s (split=%s): %w", name, split, err)
	}
	if resp.IsError() {
		if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
			logGatedAccessHint(ctx, name)
		}
		if apiErr.Error != "" {
			return nil, fmt.Errorf("failed to fetch rows for %s (split=%s): %s: %s",
				name, split, resp.Status(), apiErr.Error)
		}
		return nil, fmt.Errorf("failed to fetch rows for %s (split=%s): %s", name, split, resp.Status())
	}
	return &result, nil
}

// logGatedAccessHint points the operator at the access-request workflow for
// gated datasets before the fetch error propagates.
func logGatedAccessHint(ctx context.Context, name string) {
	log := logger.FromContext(ctx)
	log.Error("dataset access denied; this dataset may be gated", "dataset", name)
	log.Error(fmt.Sprintf("visit https://huggingface.co/datasets/%s to request access", name))
	log.Error("once approved, set HF_TOKEN to a token with read access")
}
