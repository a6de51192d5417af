package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/word-fall/arcade"
)

func TestLoadLearned_MissingFileIsEmpty(t *testing.T) {
	lf, err := LoadLearned(filepath.Join(t.TempDir(), "learned.yaml"))
	require.NoError(t, err)
	assert.Zero(t, lf.XP)
	assert.Empty(t, lf.Words)
	assert.NotNil(t, lf.Review)
}

func TestLoadLearned_Corrupt(t *testing.T) {
	path := writeFile(t, t.TempDir(), "learned.yaml", "xp: [nope\n")
	_, err := LoadLearned(path)
	assert.Error(t, err)
}

func TestMergeLearned(t *testing.T) {
	lf := &LearnedFile{
		XP:    5,
		Words: []arcade.VocabularyItem{{Source: "chat", Target: "kedi"}},
	}

	res := arcade.Result{
		Score:     120,
		XPAwarded: 12,
		Learned: []arcade.VocabularyItem{
			{Source: "chat", Target: "kedi"},
			{Source: "eau", Target: "su"},
		},
		Struggles: []arcade.Struggle{
			{Item: arcade.VocabularyItem{Source: "pain", Target: "ekmek"}, Misses: 2, NearMisses: 1},
		},
	}

	added := MergeLearned(lf, res)
	assert.Equal(t, 1, added)
	assert.Equal(t, 17, lf.XP)
	assert.Equal(t, []arcade.VocabularyItem{
		{Source: "chat", Target: "kedi"},
		{Source: "eau", Target: "su"},
	}, lf.Words)
	assert.Equal(t, 3, lf.Review["pain"])

	// A second session accumulates review counts
	MergeLearned(lf, arcade.Result{Struggles: res.Struggles})
	assert.Equal(t, 6, lf.Review["pain"])
}

func TestSaveLearned_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "learned.yaml")

	lf := &LearnedFile{
		XP:     42,
		Words:  []arcade.VocabularyItem{{Source: "chien", Target: "köpek", PartOfSpeech: "noun"}},
		Review: map[string]int{"chat": 2},
	}
	require.NoError(t, SaveLearned(path, lf))

	got, err := LoadLearned(path)
	require.NoError(t, err)
	assert.Equal(t, lf, got)

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
