package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordField(t *testing.T) {
	rec := Record{Raw: []byte(`{"id":"7","text":"April is a month.","meta":{"title":"April"},"views":12}`)}

	t.Run("extracts string field", func(t *testing.T) {
		text, ok := rec.Field("text")
		assert.True(t, ok)
		assert.Equal(t, "April is a month.", text)
	})

	t.Run("extracts nested field by path", func(t *testing.T) {
		title, ok := rec.Field("meta.title")
		assert.True(t, ok)
		assert.Equal(t, "April", title)
	})

	t.Run("rejects absent field", func(t *testing.T) {
		_, ok := rec.Field("body")
		assert.False(t, ok)
	})

	t.Run("rejects non-string field", func(t *testing.T) {
		_, ok := rec.Field("views")
		assert.False(t, ok)
	})
}

func TestRecordTruncated(t *testing.T) {
	rec := Record{TruncatedCells: []string{"text"}}
	assert.True(t, rec.Truncated("text"))
	assert.False(t, rec.Truncated("title"))

	none := Record{}
	assert.False(t, none.Truncated("text"))
}
