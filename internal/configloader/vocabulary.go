package configloader

import (
	"fmt"
	"os"

	"github.com/yaklabco/gozen/pkg/config"
	"github.com/yaklabco/gozen/pkg/resources"
)

// LoadVocabulary reads a user vocabulary from a YAML or TOML file, chosen
// by extension.
func LoadVocabulary(path string) (*resources.Vocabulary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	var voc *resources.Vocabulary
	if IsTOMLConfig(path) {
		voc, err = resources.ParseVocabularyTOML(content)
	} else {
		voc, err = resources.ParseVocabulary(content)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return voc, nil
}

// BuildStore returns a resource store whose user vocabulary merges the
// files listed in cfg, in order, with cfg.Variables applied on top.
func BuildStore(cfg *config.Config) (*resources.Store, error) {
	if cfg == nil {
		return resources.NewStore(), nil
	}

	vocs := make([]*resources.Vocabulary, 0, len(cfg.Vocabulary))
	for _, path := range cfg.Vocabulary {
		voc, err := LoadVocabulary(path)
		if err != nil {
			return nil, err
		}
		vocs = append(vocs, voc)
	}

	store := resources.NewStore(resources.WithUserVocabulary(resources.Merge(vocs...)))
	for name, value := range cfg.Variables {
		store.SetVariable(name, value)
	}
	return store, nil
}
