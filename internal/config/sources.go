package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/btrdirectory/surveyor/pkg/errors"
)

// Sources holds optional data loaded from a sources.yaml file:
// operator website domains and extra search queries to run alongside
// the built-in ones.
type Sources struct {
	// OperatorDomains maps operator names to their website domains,
	// used to classify search results as operator websites.
	OperatorDomains map[string]string `yaml:"operator_domains"`

	// ExtraQueries are additional search queries appended to the
	// built-in query set.
	ExtraQueries []string `yaml:"extra_queries"`
}

// LoadSources reads a sources.yaml file. A missing file is not an
// error; an empty Sources is returned.
func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Sources{}, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.NewParseError("yaml", path, "invalid sources file", err)
	}
	return &s, nil
}
