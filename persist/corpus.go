package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/thermograph/rag"
	"github.com/katalvlaran/thermograph/segment"
)

var (
	// ErrCorrupt indicates a cached artifact failed validation on load.
	ErrCorrupt = errors.New("persist: cached artifact is corrupt")
	// ErrShape indicates a checkpoint matrix does not match the target
	// model's parameter dimensions.
	ErrShape = errors.New("persist: checkpoint parameter shape mismatch")
)

// CorpusPath returns the cache filename for a corpus built with the given
// segmentation parameters, rooted at dir.
func CorpusPath(dir string, p segment.Params) string {
	return filepath.Join(dir, fmt.Sprintf("graphs_%s.json", p.Key()))
}

// SaveCorpus writes the corpus to path as JSON.
func SaveCorpus(path string, c rag.Corpus) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("persist: encode corpus: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: write corpus: %w", err)
	}
	return nil
}

// LoadCorpus reads a cached corpus and validates every graph in it. A
// missing file surfaces as fs.ErrNotExist so callers can treat it as a
// cache miss.
func LoadCorpus(path string) (rag.Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: read corpus: %w", err)
	}
	var c rag.Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("persist: decode corpus: %v: %w", err, ErrCorrupt)
	}
	for i, g := range c {
		if g == nil {
			return nil, fmt.Errorf("persist: graph %d is null: %w", i, ErrCorrupt)
		}
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("persist: graph %d: %v: %w", i, err, ErrCorrupt)
		}
	}
	return c, nil
}
