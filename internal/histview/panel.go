// Package histview holds the version-history panel state: whether the panel
// is open, which page of entries is loaded, and which single entry has its
// detail expanded. The panel fetches through an injected function so the
// same state machine drives both the CLI table view and the TUI model.
package histview

import (
	"context"

	"github.com/chazuruo/promptctl/internal/api"
)

// FetchFunc loads one page of history entries for the entity under view.
type FetchFunc func(ctx context.Context, page, pageSize int) (api.Page[api.HistoryEntry], error)

// Panel is the history panel state machine. Closed by default; opening or
// changing pages triggers a fetch. A failed fetch leaves prior state intact.
type Panel struct {
	fetch    FetchFunc
	pageSize int

	open       bool
	page       int
	totalPages int
	entries    []api.HistoryEntry
	expandedID string
}

func New(fetch FetchFunc, pageSize int) *Panel {
	return &Panel{fetch: fetch, pageSize: pageSize, page: 1, totalPages: 1}
}

func (p *Panel) IsOpen() bool                { return p.open }
func (p *Panel) Page() int                   { return p.page }
func (p *Panel) TotalPages() int             { return p.totalPages }
func (p *Panel) Entries() []api.HistoryEntry { return p.entries }
func (p *Panel) ExpandedID() string          { return p.expandedID }

// Open shows the panel and re-fetches the kept page (page 1 on a fresh
// panel). Re-opening an already-open panel is how callers refresh after a
// revert.
func (p *Panel) Open(ctx context.Context) error {
	if err := p.load(ctx, p.page); err != nil {
		return err
	}
	p.open = true
	return nil
}

// Close hides the panel and collapses any expanded detail. The loaded page
// is kept; reopening re-fetches it.
func (p *Panel) Close() {
	p.open = false
	p.expandedID = ""
}

// Toggle opens a closed panel or closes an open one.
func (p *Panel) Toggle(ctx context.Context) error {
	if p.open {
		p.Close()
		return nil
	}
	return p.Open(ctx)
}

// NextPage advances one page. A no-op on the last page or when closed.
func (p *Panel) NextPage(ctx context.Context) error {
	if !p.open || p.page >= p.totalPages {
		return nil
	}
	return p.load(ctx, p.page+1)
}

// PrevPage goes back one page. A no-op on the first page or when closed.
func (p *Panel) PrevPage(ctx context.Context) error {
	if !p.open || p.page <= 1 {
		return nil
	}
	return p.load(ctx, p.page-1)
}

// ExpandDetail expands one entry's snapshot detail, collapsing any other.
// Expanding the already-expanded entry collapses it.
func (p *Panel) ExpandDetail(entryID string) {
	if p.expandedID == entryID {
		p.expandedID = ""
		return
	}
	p.expandedID = entryID
}

// Entry returns the loaded entry with the given id, if present on the
// current page.
func (p *Panel) Entry(entryID string) (api.HistoryEntry, bool) {
	for _, e := range p.entries {
		if e.ID == entryID {
			return e, true
		}
	}
	return api.HistoryEntry{}, false
}

func (p *Panel) load(ctx context.Context, page int) error {
	res, err := p.fetch(ctx, page, p.pageSize)
	if err != nil {
		return err
	}
	p.page = page
	p.totalPages = res.TotalPages(p.pageSize)
	p.entries = res.Results
	p.expandedID = ""
	return nil
}
