package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_UnmarshalEnvelope(t *testing.T) {
	data := []byte(`{"count": 12, "results": [{"name": "a"}, {"name": "b"}]}`)

	var page Page[Category]
	require.NoError(t, json.Unmarshal(data, &page))

	assert.True(t, page.Paginated)
	assert.Equal(t, 12, page.Count)
	assert.Len(t, page.Results, 2)
	assert.Equal(t, "a", page.Results[0].Name)
}

func TestPage_UnmarshalBareArray(t *testing.T) {
	data := []byte(`[{"name": "x"}, {"name": "y"}, {"name": "z"}]`)

	var page Page[Category]
	require.NoError(t, json.Unmarshal(data, &page))

	assert.False(t, page.Paginated)
	assert.Equal(t, 3, page.Count)
	assert.Len(t, page.Results, 3)
}

func TestPage_UnmarshalEmptyArray(t *testing.T) {
	var page Page[Prompt]
	require.NoError(t, json.Unmarshal([]byte(`[]`), &page))
	assert.Equal(t, 0, page.Count)
	assert.Empty(t, page.Results)
}

func TestPage_UnmarshalRejectsOtherShapes(t *testing.T) {
	var page Page[Prompt]
	err := json.Unmarshal([]byte(`{"message": "hi"}`), &page)
	assert.Error(t, err)
}

func TestPage_TotalPages(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		paginated bool
		pageSize  int
		want      int
	}{
		{"exact fit", 20, true, 10, 2},
		{"remainder rounds up", 12, true, 10, 2},
		{"single short page", 7, true, 10, 1},
		{"empty", 0, true, 10, 1},
		{"unpaginated always one page", 500, false, 10, 1},
		{"zero page size", 12, true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Page[Prompt]{Count: tt.count, Paginated: tt.paginated}
			assert.Equal(t, tt.want, p.TotalPages(tt.pageSize))
		})
	}
}

func TestSnapshot_PartialFields(t *testing.T) {
	data := []byte(`{"name": "v2", "steps": [{"prompt": "p1", "order": 0}]}`)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	require.NotNil(t, snap.Name)
	assert.Equal(t, "v2", *snap.Name)
	assert.Nil(t, snap.Description, "absent field stays nil")
	assert.Nil(t, snap.Visibility)
	require.Len(t, snap.Steps, 1)
	assert.Equal(t, "p1", snap.Steps[0].Prompt)
}
