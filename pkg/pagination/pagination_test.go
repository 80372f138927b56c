package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name      string
		in        Query
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", Query{}, 1, 10},
		{"negative values get defaults", Query{Page: -3, Limit: -1}, 1, 10},
		{"limit capped at 100", Query{Page: 2, Limit: 500}, 2, 100},
		{"valid values untouched", Query{Page: 3, Limit: 25}, 3, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := tc.in
			q.Normalize()
			assert.Equal(t, tc.wantPage, q.Page)
			assert.Equal(t, tc.wantLimit, q.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Query{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Query{Page: 3, Limit: 10}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Query{Page: 2, Limit: 10}, 35)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 10, meta.Limit)
	assert.EqualValues(t, 35, meta.Total)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)

	// 首页且不满一页
	meta = NewMeta(Query{Page: 1, Limit: 10}, 5)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrevious)

	// 空结果
	meta = NewMeta(Query{Page: 1, Limit: 10}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
}
