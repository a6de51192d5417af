package arcade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(pairs ...string) []VocabularyItem {
	out := make([]VocabularyItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, VocabularyItem{Source: pairs[i], Target: pairs[i+1]})
	}
	return out
}

func TestBuildPool_PadsSmallLearnedList(t *testing.T) {
	learned := words("chat", "kedi")
	fallback := words("chien", "köpek", "chat", "pisi", "eau", "su")

	pool := BuildPool(learned, 3, fallback)

	require.Equal(t, 3, pool.Len())
	assert.Equal(t, words("chat", "kedi", "chien", "köpek", "eau", "su"), pool.Items())
	assert.False(t, pool.IsNew("chat"), "learned entry wins over fallback duplicate")
	assert.True(t, pool.IsNew("chien"))
	assert.True(t, pool.IsNew("eau"))
}

func TestBuildPool_LargeLearnedListStandsAlone(t *testing.T) {
	learned := words("chat", "kedi", "chien", "köpek")
	pool := BuildPool(learned, 2, FallbackVocabulary)

	assert.Equal(t, learned, pool.Items())
	assert.False(t, pool.IsNew("chat"))
}

func TestBuildPool_SkipsIncompleteAndDuplicateEntries(t *testing.T) {
	learned := []VocabularyItem{
		{Source: "chat", Target: "kedi"},
		{Source: "chat", Target: "pisi"},
		{Source: "", Target: "boş"},
		{Source: "vide", Target: ""},
	}
	pool := BuildPool(learned, 0, nil)

	assert.Equal(t, words("chat", "kedi"), pool.Items())
}

func TestBuildPool_EmptyLearnedUsesFallback(t *testing.T) {
	pool := BuildPool(nil, 10, FallbackVocabulary)

	require.Equal(t, len(FallbackVocabulary), pool.Len())
	for _, it := range pool.Items() {
		assert.True(t, pool.IsNew(it.Source))
	}
}
