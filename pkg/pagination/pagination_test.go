package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 1000}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, maxPerPage, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 0}
	p.Validate()
	assert.Equal(t, defaultPerPage, p.PerPage)
	assert.Equal(t, 2*defaultPerPage, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 10, 35)
	assert.Equal(t, 4, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(1, 10, 0)
	assert.Equal(t, 0, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}
