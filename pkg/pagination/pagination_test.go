package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := Normalize(Params{})
	assert.Equal(t, 1, n.Page)
	assert.Equal(t, DefaultPerPage, n.PerPage)

	n = Normalize(Params{Page: 3, PerPage: 500})
	assert.Equal(t, 3, n.Page)
	assert.Equal(t, MaxPerPage, n.PerPage)
}

func TestOffsetAndBuffer(t *testing.T) {
	p := Params{Page: 3, PerPage: 10}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 11, p.LimitWithBuffer())
}

func TestNewPageTrimsOverflow(t *testing.T) {
	items := []int{1, 2, 3, 4}
	page := NewPage(items, Params{Page: 1, PerPage: 3})
	assert.True(t, page.HasMore)
	assert.Len(t, page.Items, 3)

	page = NewPage([]int{1, 2}, Params{Page: 1, PerPage: 3})
	assert.False(t, page.HasMore)
	assert.Len(t, page.Items, 2)
}
