package histview

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/promptctl/internal/api"
)

// fakeHistory serves a fixed number of entries through the paginated
// envelope, recording each request.
type fakeHistory struct {
	total    int
	requests []int
	fail     bool
}

func (f *fakeHistory) fetch(_ context.Context, page, pageSize int) (api.Page[api.HistoryEntry], error) {
	if f.fail {
		return api.Page[api.HistoryEntry]{}, fmt.Errorf("backend down")
	}
	f.requests = append(f.requests, page)
	start := (page - 1) * pageSize
	var entries []api.HistoryEntry
	for i := start; i < f.total && i < start+pageSize; i++ {
		entries = append(entries, api.HistoryEntry{ID: fmt.Sprintf("h%d", i)})
	}
	return api.Page[api.HistoryEntry]{Count: f.total, Results: entries, Paginated: true}, nil
}

func TestPanelClosedByDefault(t *testing.T) {
	p := New((&fakeHistory{}).fetch, 10)
	assert.False(t, p.IsOpen())
	assert.Empty(t, p.Entries())
}

func TestOpenFetchesFirstPage(t *testing.T) {
	f := &fakeHistory{total: 12}
	p := New(f.fetch, 10)

	require.NoError(t, p.Open(context.Background()))
	assert.True(t, p.IsOpen())
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 2, p.TotalPages())
	assert.Len(t, p.Entries(), 10)
	assert.Equal(t, []int{1}, f.requests)
}

func TestPagingBoundaries(t *testing.T) {
	f := &fakeHistory{total: 12}
	p := New(f.fetch, 10)
	ctx := context.Background()
	require.NoError(t, p.Open(ctx))

	// back past page 1 is a no-op, no request
	require.NoError(t, p.PrevPage(ctx))
	assert.Equal(t, 1, p.Page())

	require.NoError(t, p.NextPage(ctx))
	assert.Equal(t, 2, p.Page())
	assert.Len(t, p.Entries(), 2)

	// forward past the last page is a no-op, no request
	require.NoError(t, p.NextPage(ctx))
	assert.Equal(t, 2, p.Page())
	assert.Equal(t, []int{1, 2}, f.requests)
}

func TestPagingWhenClosedIsNoop(t *testing.T) {
	f := &fakeHistory{total: 30}
	p := New(f.fetch, 10)
	require.NoError(t, p.NextPage(context.Background()))
	assert.Empty(t, f.requests)
}

func TestReopenRefetchesCurrentPageKept(t *testing.T) {
	f := &fakeHistory{total: 25}
	p := New(f.fetch, 10)
	ctx := context.Background()
	require.NoError(t, p.Open(ctx))
	require.NoError(t, p.NextPage(ctx))

	p.Close()
	assert.False(t, p.IsOpen())

	require.NoError(t, p.Open(ctx))
	assert.Equal(t, 2, p.Page())
	assert.Equal(t, []int{1, 2, 2}, f.requests)
}

func TestFetchFailureLeavesStateUntouched(t *testing.T) {
	f := &fakeHistory{total: 12}
	p := New(f.fetch, 10)
	ctx := context.Background()
	require.NoError(t, p.Open(ctx))
	before := p.Entries()

	f.fail = true
	require.Error(t, p.NextPage(ctx))
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, before, p.Entries())
	assert.True(t, p.IsOpen())
}

func TestExpandDetailSingleEntry(t *testing.T) {
	f := &fakeHistory{total: 3}
	p := New(f.fetch, 10)
	require.NoError(t, p.Open(context.Background()))

	p.ExpandDetail("h0")
	assert.Equal(t, "h0", p.ExpandedID())

	// expanding another collapses the first
	p.ExpandDetail("h1")
	assert.Equal(t, "h1", p.ExpandedID())

	// toggling the expanded entry collapses it
	p.ExpandDetail("h1")
	assert.Empty(t, p.ExpandedID())
}

func TestPageChangeCollapsesDetail(t *testing.T) {
	f := &fakeHistory{total: 12}
	p := New(f.fetch, 10)
	ctx := context.Background()
	require.NoError(t, p.Open(ctx))
	p.ExpandDetail("h0")

	require.NoError(t, p.NextPage(ctx))
	assert.Empty(t, p.ExpandedID())
}

func TestEntryLookup(t *testing.T) {
	f := &fakeHistory{total: 3}
	p := New(f.fetch, 10)
	require.NoError(t, p.Open(context.Background()))

	e, ok := p.Entry("h2")
	require.True(t, ok)
	assert.Equal(t, "h2", e.ID)

	_, ok = p.Entry("missing")
	assert.False(t, ok)
}
