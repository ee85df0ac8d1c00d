package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type author struct {
	ID   uint
	Name string
}

type label struct {
	ID        uint
	ArticleID uint
	Text      string
}

type article struct {
	ID       uint
	Title    string `qbe:"searchable"`
	Status   string `qbe:"searchable,enum"`
	Views    *int   `qbe:"searchable"`
	Draft    bool
	AuthorID uint
	Author   *author `qbe:"searchable"`
	Labels   []label
	Scratch  string `gorm:"-"`
}

func TestFromModel(t *testing.T) {
	m, err := FromModel(&article{})
	require.NoError(t, err)

	assert.Equal(t, "articles", m.Entity())

	attrs := make(map[string]Attribute)
	for _, a := range m.Attributes() {
		attrs[a.Name] = a
	}

	assert.NotContains(t, attrs, "scratch")

	assert.Equal(t, Text, attrs["title"].ValueType)
	assert.True(t, attrs["title"].Searchable)
	assert.Equal(t, Enum, attrs["status"].ValueType)
	assert.Equal(t, Numeric, attrs["views"].ValueType)
	assert.Equal(t, Boolean, attrs["draft"].ValueType)
	assert.False(t, attrs["draft"].Searchable)

	require.Contains(t, attrs, "Author")
	assert.Equal(t, ToOne, attrs["Author"].Relation)
	assert.True(t, attrs["Author"].Searchable)

	require.Contains(t, attrs, "Labels")
	assert.Equal(t, ToMany, attrs["Labels"].Relation)
}

func TestFromModel_ValueOf(t *testing.T) {
	m, err := FromModel(&article{}, WithTable("posts"))
	require.NoError(t, err)
	assert.Equal(t, "posts", m.Entity())

	zero := 0
	a := &article{Title: "Go", Views: &zero}

	v, err := m.ValueOf(a, "title")
	require.NoError(t, err)
	assert.Equal(t, "Go", v)

	v, err = m.ValueOf(*a, "views")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = m.ValueOf(a, "status")
	require.NoError(t, err)
	assert.Nil(t, v, "zero values are absent")

	_, err = m.ValueOf(a, "nope")
	assert.ErrorIs(t, err, ErrUnknownAttribute)

	_, err = m.ValueOf(&author{}, "title")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
