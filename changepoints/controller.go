// Package changepoints owns the state behind the change point grid: filters,
// pagination, selection and the merged rows of the current page.
//
// A Controller is not safe for concurrent use. It is meant to be driven from a
// single goroutine (the UI loop). Network work is split out into PageRequest so
// it can run elsewhere. Results come back through Apply, which drops anything
// a newer request has superseded.
package changepoints

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/andareed/siftly-changepoints/logging"
	"github.com/andareed/siftly-changepoints/perfapi"
	"golang.org/x/sync/errgroup"
)

// ErrStaleResult is returned by Apply for a result that a newer request superseded.
var ErrStaleResult = errors.New("changepoints: result superseded by a newer request")

// Fetcher is the subset of perfapi.Client the controller needs.
type Fetcher interface {
	ChangePointsByVersion(ctx context.Context, project string, params url.Values) (*perfapi.VersionPage, error)
	VersionByID(ctx context.Context, versionID string) (*perfapi.VersionDetail, error)
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

type Options struct {
	Project  string
	PageSize int
	// Filters overrides DefaultFilters, e.g. when restoring a session.
	Filters *FilterState
	Page    int
}

type Controller struct {
	fetcher         Fetcher
	project         string
	filters         FilterState
	pagination      Pagination
	selection       map[int]struct{}
	rows            []GridRow
	connectionError bool
	generation      uint64
	grid            GridOptions
}

func New(fetcher Fetcher, opts Options) *Controller {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	filters := DefaultFilters()
	if opts.Filters != nil {
		filters = opts.Filters.Clone()
	}
	page := opts.Page
	if page < 0 {
		page = 0
	}
	return &Controller{
		fetcher: fetcher,
		project: opts.Project,
		filters: filters,
		pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: 1,
		},
		selection: make(map[int]struct{}),
		rows:      []GridRow{},
		grid:      DefaultGridOptions(HazardValues),
	}
}

func (c *Controller) Project() string          { return c.project }
func (c *Controller) Filters() FilterState     { return c.filters.Clone() }
func (c *Controller) Pagination() Pagination   { return c.pagination }
func (c *Controller) ConnectionError() bool    { return c.connectionError }
func (c *Controller) GridOptions() GridOptions { return c.grid }

// Rows returns the current page. The slice must not be modified.
func (c *Controller) Rows() []GridRow { return c.rows }

// PageRequest is a snapshot of everything one page load needs.
// Do touches no controller state and may run on any goroutine.
type PageRequest struct {
	fetcher    Fetcher
	project    string
	params     url.Values
	generation uint64
	err        error
}

// PageResult is what a PageRequest produced. Hand it back to Apply.
type PageResult struct {
	Generation uint64
	Rows       []GridRow
	Pagination Pagination
	Err        error
}

// Begin snapshots the current query and supersedes any load still in flight.
func (c *Controller) Begin() *PageRequest {
	c.generation++
	params, err := c.filters.Values(c.pagination.Page, c.pagination.PageSize)
	return &PageRequest{
		fetcher:    c.fetcher,
		project:    c.project,
		params:     params,
		generation: c.generation,
		err:        err,
	}
}

// Params returns the query parameters this request will send.
func (r *PageRequest) Params() url.Values { return r.params }

// Do fetches the page, then every version on it, then merges.
func (r *PageRequest) Do(ctx context.Context) PageResult {
	res := PageResult{Generation: r.generation}
	if r.err != nil {
		res.Err = r.err
		return res
	}

	page, err := r.fetcher.ChangePointsByVersion(ctx, r.project, r.params)
	if err != nil {
		res.Err = err
		return res
	}
	if page == nil {
		res.Err = errors.New("empty change points response")
		return res
	}

	details, err := fetchVersions(ctx, r.fetcher, page.Versions)
	if err != nil {
		res.Err = err
		return res
	}

	rows, err := mergeRows(r.project, page.Versions, details)
	if err != nil {
		res.Err = err
		return res
	}

	res.Rows = rows
	res.Pagination = Pagination{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	return res
}

// fetchVersions issues one detail request per version entry, concurrently.
// details[i] belongs to versions[i]. The first failure cancels the rest.
func fetchVersions(ctx context.Context, f Fetcher, versions []perfapi.VersionChangePoints) ([]perfapi.VersionDetail, error) {
	details := make([]perfapi.VersionDetail, len(versions))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range versions {
		g.Go(func() error {
			detail, err := f.VersionByID(gctx, v.VersionID)
			if err != nil {
				return err
			}
			if detail == nil {
				return fmt.Errorf("version %s: empty response", v.VersionID)
			}
			details[i] = *detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return details, nil
}

func mergeRows(project string, versions []perfapi.VersionChangePoints, details []perfapi.VersionDetail) ([]GridRow, error) {
	rows := []GridRow{}
	for i, v := range versions {
		for _, cp := range v.ChangePoints {
			row, err := NewGridRow(project, cp, details[i])
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Apply commits a result. Stale results are dropped with ErrStaleResult.
// A failed result sets the connection error flag and leaves rows and
// pagination untouched.
func (c *Controller) Apply(res PageResult) error {
	if res.Generation != c.generation {
		logging.Debugf("changepoints: dropping stale result gen=%d current=%d", res.Generation, c.generation)
		return ErrStaleResult
	}
	if res.Err != nil {
		logging.Warnf("changepoints: page %d load failed: %v", c.pagination.Page, res.Err)
		c.connectionError = true
		return res.Err
	}
	c.connectionError = false
	if !sameRowIDs(c.rows, res.Rows) {
		c.ClearSelection()
	}
	c.rows = res.Rows
	c.pagination = res.Pagination
	logging.Infof("changepoints: loaded page %d/%d (%d rows)", c.pagination.Page, c.pagination.TotalPages, len(c.rows))
	return nil
}

// sameRowIDs reports whether both pages hold the same change points in the
// same order, so index-keyed selection still points at the same rows.
func sameRowIDs(a, b []GridRow) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}

// LoadPage fetches and commits the current page synchronously.
func (c *Controller) LoadPage(ctx context.Context) error {
	return c.Apply(c.Begin().Do(ctx))
}

// Reload re-requests the current page. The selection survives only if the
// reloaded page holds the same rows.
func (c *Controller) Reload() *PageRequest {
	return c.Begin()
}

// GoToPage moves to page n (negative pages clamp to 0), clears the selection
// and returns the request for the new page.
func (c *Controller) GoToPage(n int) *PageRequest {
	if n < 0 {
		n = 0
	}
	c.pagination.Page = n
	c.ClearSelection()
	return c.Begin()
}

// NextRequest and PrevRequest are the non-blocking forms of NextPage and PrevPage.
func (c *Controller) NextRequest() *PageRequest { return c.GoToPage(c.pagination.Page + 1) }
func (c *Controller) PrevRequest() *PageRequest { return c.GoToPage(c.pagination.Page - 1) }

func (c *Controller) NextPage(ctx context.Context) error {
	return c.Apply(c.NextRequest().Do(ctx))
}

// PrevPage loads the previous page. On the first page it reloads page 0.
func (c *Controller) PrevPage(ctx context.Context) error {
	return c.Apply(c.PrevRequest().Do(ctx))
}

func (c *Controller) SetPage(ctx context.Context, n int) error {
	return c.Apply(c.GoToPage(n).Do(ctx))
}

// UpdateFilters replaces the filters and restarts from the first page.
func (c *Controller) UpdateFilters(f FilterState) *PageRequest {
	c.filters = f.Clone()
	return c.GoToPage(0)
}

func (c *Controller) ApplyFilters(ctx context.Context, f FilterState) error {
	return c.Apply(c.UpdateFilters(f).Do(ctx))
}

// ToggleSelection flips the selection of the row at index i and reports the new state.
func (c *Controller) ToggleSelection(i int) bool {
	if i < 0 || i >= len(c.rows) {
		return false
	}
	if _, ok := c.selection[i]; ok {
		delete(c.selection, i)
		return false
	}
	c.selection[i] = struct{}{}
	return true
}

func (c *Controller) IsSelected(i int) bool {
	_, ok := c.selection[i]
	return ok
}

func (c *Controller) SelectAll() {
	for i := range c.rows {
		c.selection[i] = struct{}{}
	}
}

func (c *Controller) ClearSelection() {
	c.selection = make(map[int]struct{})
}

// Selection returns the selected row indices in ascending order.
func (c *Controller) Selection() []int {
	out := make([]int, 0, len(c.selection))
	for i := range c.selection {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// SelectedRows returns the selected rows in page order.
func (c *Controller) SelectedRows() []GridRow {
	out := []GridRow{}
	for _, i := range c.Selection() {
		if i >= len(c.rows) {
			continue
		}
		out = append(out, c.rows[i])
	}
	return out
}
