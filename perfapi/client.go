// Package perfapi talks to the two REST endpoints behind the change point grid:
// the performance analysis service (change points grouped by version) and the
// Evergreen v2 API (version metadata).
package perfapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/andareed/siftly-changepoints/logging"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultChangePointsByVersionPath = "/time_series/project/{projectId}/change_points_by_version"
	DefaultVersionByIDPath           = "versions/{version_id}"
	DefaultEvergreenBaseURL          = "https://evergreen.mongodb.com/rest/v2"
)

// Config is everything the client needs; nothing is looked up globally.
type Config struct {
	AnalysisBaseURL           string
	ChangePointsByVersionPath string
	AnalysisToken             string

	EvergreenBaseURL string
	VersionByIDPath  string
	EvergreenUser    string
	EvergreenAPIKey  string

	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
	Debug         bool
}

// DefaultConfig returns a config pointing at the public Evergreen API.
// AnalysisBaseURL has no sensible default and must be provided.
func DefaultConfig() Config {
	return Config{
		ChangePointsByVersionPath: DefaultChangePointsByVersionPath,
		EvergreenBaseURL:          DefaultEvergreenBaseURL,
		VersionByIDPath:           DefaultVersionByIDPath,
		Timeout:                   30 * time.Second,
		RetryWaitTime:             time.Second,
	}
}

type Client struct {
	analysis  *resty.Client
	evergreen *resty.Client
	cfg       Config
}

func New(cfg Config) *Client {
	if cfg.ChangePointsByVersionPath == "" {
		cfg.ChangePointsByVersionPath = DefaultChangePointsByVersionPath
	}
	if cfg.VersionByIDPath == "" {
		cfg.VersionByIDPath = DefaultVersionByIDPath
	}

	analysis := newRestClient(cfg, cfg.AnalysisBaseURL)
	if cfg.AnalysisToken != "" {
		analysis.SetAuthToken(cfg.AnalysisToken)
	}

	evergreen := newRestClient(cfg, cfg.EvergreenBaseURL)
	if cfg.EvergreenUser != "" && cfg.EvergreenAPIKey != "" {
		evergreen.SetHeader("Api-User", cfg.EvergreenUser)
		evergreen.SetHeader("Api-Key", cfg.EvergreenAPIKey)
	}

	return &Client{
		analysis:  analysis,
		evergreen: evergreen,
		cfg:       cfg,
	}
}

func newRestClient(cfg Config, baseURL string) *resty.Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetLogger(logging.Std).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	if cfg.Debug {
		c.SetDebug(true)
	}
	return c
}

// ChangePointsByVersion fetches one page of change points for project.
// params is sent as-is; callers decide which filters are present.
func (c *Client) ChangePointsByVersion(ctx context.Context, project string, params url.Values) (*VersionPage, error) {
	resp, err := c.analysis.R().
		SetContext(ctx).
		SetPathParam("projectId", project).
		SetQueryParamsFromValues(params).
		Get(c.cfg.ChangePointsByVersionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get change points for %s: %w", project, err)
	}
	if !resp.IsSuccess() {
		return nil, &StatusCodeError{StatusCode: resp.StatusCode(), URL: resp.Request.URL}
	}

	var page VersionPage
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, fmt.Errorf("can't decode change points page: %w", err)
	}
	logging.Debugf("perfapi: page %d/%d with %d versions for %s", page.Page, page.TotalPages, len(page.Versions), project)
	return &page, nil
}

// VersionByID fetches the Evergreen version document for versionID.
func (c *Client) VersionByID(ctx context.Context, versionID string) (*VersionDetail, error) {
	resp, err := c.evergreen.R().
		SetContext(ctx).
		SetPathParam("version_id", versionID).
		Get(c.cfg.VersionByIDPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get version %s: %w", versionID, err)
	}
	if !resp.IsSuccess() {
		return nil, &StatusCodeError{StatusCode: resp.StatusCode(), URL: resp.Request.URL}
	}

	var detail VersionDetail
	if err := json.Unmarshal(resp.Body(), &detail); err != nil {
		return nil, fmt.Errorf("can't decode version %s: %w", versionID, err)
	}
	return &detail, nil
}
