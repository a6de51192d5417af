package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/word-fall/arcade"
)

// Manager handles discovery and loading of vocabulary files
type Manager struct {
	dir   string
	files []string
	log   *slog.Logger
}

// NewManager creates a manager over dir; a nil logger discards
func NewManager(dir string, logger *slog.Logger) *Manager {
	if dir == "" {
		dir = DefaultAssetsDir
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{dir: dir, log: logger}
}

// Discover scans the assets directory for .yaml/.yml files, skipping hidden ones.
// A missing directory is not an error.
func (m *Manager) Discover() error {
	m.files = m.files[:0]

	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		m.log.Info("assets directory missing", "dir", m.dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("content: read %s: %w", m.dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch filepath.Ext(name) {
		case ".yaml", ".yml":
			m.files = append(m.files, filepath.Join(m.dir, name))
		}
	}

	m.log.Debug("discovered vocabulary files", "dir", m.dir, "count", len(m.files))
	return nil
}

// Files returns the discovered paths in directory order
func (m *Manager) Files() []string {
	return m.files
}

// LoadFile parses one word list; incomplete entries are dropped
func LoadFile(path string) ([]arcade.VocabularyItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", path, err)
	}

	var list WordList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", path, err)
	}

	words := cleanWords(list.Words)
	if len(words) == 0 {
		return nil, fmt.Errorf("content: %s: %w", path, ErrNoVocabulary)
	}
	return words, nil
}

// LoadAll merges every discovered file, first occurrence of a source wins.
// Unreadable files are logged and skipped; ErrNoVocabulary if nothing loads.
func (m *Manager) LoadAll() ([]arcade.VocabularyItem, error) {
	var all []arcade.VocabularyItem
	seen := make(map[string]struct{})

	for _, path := range m.files {
		words, err := LoadFile(path)
		if err != nil {
			m.log.Warn("skipping vocabulary file", "path", path, "error", err)
			continue
		}
		for _, w := range words {
			if _, ok := seen[w.Source]; ok {
				continue
			}
			seen[w.Source] = struct{}{}
			all = append(all, w)
		}
	}

	if len(all) == 0 {
		return nil, ErrNoVocabulary
	}
	m.log.Info("vocabulary loaded", "files", len(m.files), "words", len(all))
	return all, nil
}

// cleanWords trims fields and drops entries without a source or target
func cleanWords(in []arcade.VocabularyItem) []arcade.VocabularyItem {
	out := make([]arcade.VocabularyItem, 0, len(in))
	for _, w := range in {
		w.Source = strings.TrimSpace(w.Source)
		w.Target = strings.TrimSpace(w.Target)
		w.PartOfSpeech = strings.TrimSpace(w.PartOfSpeech)
		if w.Source == "" || w.Target == "" {
			continue
		}
		out = append(out, w)
	}
	return out
}
