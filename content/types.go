// Package content loads vocabulary word lists from an assets directory and
// keeps the player's learned-vocabulary file.
package content

import (
	"errors"

	"github.com/lixenwraith/word-fall/arcade"
)

const (
	DefaultAssetsDir   = "./assets"
	DefaultLearnedFile = "./learned.yaml"
)

var (
	ErrNoVocabulary = errors.New("no vocabulary entries")
)

// WordList is the on-disk format of an assets file
type WordList struct {
	Name  string                  `yaml:"name,omitempty"`
	Words []arcade.VocabularyItem `yaml:"words"`
}

// LearnedFile is the player's accumulated progress across sessions
type LearnedFile struct {
	XP    int                     `yaml:"xp"`
	Words []arcade.VocabularyItem `yaml:"words"`

	// Review counts misses and near-misses per source, oldest sessions included
	Review map[string]int `yaml:"review,omitempty"`
}
