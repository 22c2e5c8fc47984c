package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-pagefit/internal/types"
)

func TestNewKey(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		context  string
		expected Key
	}{
		{"sorted and lowered", []string{"Kubernetes", "go"}, "ctx", Key{Keywords: "go,kubernetes", Context: "ctx"}},
		{"dedupes and trims", []string{" Go", "go ", "", "SQL"}, " ctx ", Key{Keywords: "go,sql", Context: "ctx"}},
		{"empty", nil, "", Key{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewKey(tt.keywords, tt.context))
		})
	}

	assert.NotEqual(t, NewKey([]string{"go"}, "a"), NewKey([]string{"go"}, "b"))
}

func TestCache_FirstWriteWins(t *testing.T) {
	c := NewCache()
	key := NewKey([]string{"go"}, "")
	first := NewEntry(map[types.SectionType][]string{types.SectionJob: {"First"}})
	second := NewEntry(map[types.SectionType][]string{types.SectionJob: {"Second"}})

	assert.Same(t, first, c.Put(key, first))
	assert.Same(t, first, c.Put(key, second))

	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []string{"First"}, got.Bullets(types.SectionJob))

	c.Clear()
	_, ok = c.Get(key)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestEntry_BulletsReturnsCopy(t *testing.T) {
	e := NewEntry(map[types.SectionType][]string{types.SectionJob: {"A", "B", "A"}})
	got := e.Bullets(types.SectionJob)
	assert.Equal(t, []string{"A", "B"}, got)

	got[0] = "mutated"
	assert.Equal(t, []string{"A", "B"}, e.Bullets(types.SectionJob))
}

func TestOrderedSet(t *testing.T) {
	var s OrderedSet
	assert.True(t, s.Add("x"))
	assert.False(t, s.Add("x"))
	assert.True(t, s.Add("y"))
	assert.Equal(t, []string{"x", "y"}, s.Items())
	assert.True(t, s.Contains("y"))
	assert.False(t, s.Contains("z"))
	assert.Equal(t, 2, s.Len())
}
