package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/word-fall/arcade"
)

// LoadLearned reads the learned file; a missing file is an empty one
func LoadLearned(path string) (*LearnedFile, error) {
	lf := &LearnedFile{Review: make(map[string]int)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return lf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: load learned %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, lf); err != nil {
		return nil, fmt.Errorf("content: parse learned %s: %w", path, err)
	}
	if lf.Review == nil {
		lf.Review = make(map[string]int)
	}
	lf.Words = cleanWords(lf.Words)
	return lf, nil
}

// MergeLearned folds a session result into lf and returns how many words were new to it
func MergeLearned(lf *LearnedFile, res arcade.Result) int {
	if lf.Review == nil {
		lf.Review = make(map[string]int)
	}

	known := make(map[string]struct{}, len(lf.Words))
	for _, w := range lf.Words {
		known[w.Source] = struct{}{}
	}

	added := 0
	for _, w := range res.Learned {
		if _, ok := known[w.Source]; ok {
			continue
		}
		known[w.Source] = struct{}{}
		lf.Words = append(lf.Words, w)
		added++
	}

	for _, st := range res.Struggles {
		lf.Review[st.Item.Source] += st.Total()
	}

	lf.XP += res.XPAwarded
	return added
}

// SaveLearned writes lf atomically via a temp file in the same directory
func SaveLearned(path string, lf *LearnedFile) error {
	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("content: encode learned: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("content: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".learned-*.yaml")
	if err != nil {
		return fmt.Errorf("content: save learned: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("content: save learned: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("content: save learned: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("content: save learned: %w", err)
	}
	return nil
}
