package config

import (
	"bytes"
	"fmt"
	"maps"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	return withHeader(header, yamlBytes), nil
}

func withHeader(header string, body []byte) []byte {
	if header == "" {
		return body
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(body)

	return buf.Bytes()
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c

	if c.Vocabulary != nil {
		clone.Vocabulary = make([]string, len(c.Vocabulary))
		copy(clone.Vocabulary, c.Vocabulary)
	}

	if c.Variables != nil {
		clone.Variables = maps.Clone(c.Variables)
	}

	if c.Profiles != nil {
		clone.Profiles = make(map[string]ProfileConfig, len(c.Profiles))
		for name, pc := range c.Profiles {
			clone.Profiles[name] = pc.clone()
		}
	}

	return &clone
}

// clone creates a deep copy of a ProfileConfig.
func (pc ProfileConfig) clone() ProfileConfig {
	return ProfileConfig{
		Extends:        pc.Extends,
		TagCase:        clonePtr(pc.TagCase),
		AttrCase:       clonePtr(pc.AttrCase),
		AttrQuotes:     clonePtr(pc.AttrQuotes),
		TagNewline:     clonePtr(pc.TagNewline),
		PlaceCursor:    clonePtr(pc.PlaceCursor),
		Indent:         clonePtr(pc.Indent),
		InlineBreak:    clonePtr(pc.InlineBreak),
		SelfClosingTag: clonePtr(pc.SelfClosingTag),
		Filters:        clonePtr(pc.Filters),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
