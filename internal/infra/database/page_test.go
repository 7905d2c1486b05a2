package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Limit: 20, Offset: 0}, NewPage(0, -5))
	assert.Equal(t, Page{Limit: 100, Offset: 40}, NewPage(500, 40))
	assert.Equal(t, Page{Limit: 1, Offset: 0}, NewPage(1, 0))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
