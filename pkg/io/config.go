package io

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// Config is a TOML project file for the CLI: layout options plus an
// optional inline word list.
//
//	max_words = 50
//
//	[options]
//	scale = "log"
//	font_sizes = [6.0, 48.0]
//
//	[[words]]
//	text = "hello"
//	value = 10.0
type Config struct {
	MaxWords int               `toml:"max_words"`
	Options  wordcloud.Options `toml:"options"`
	Words    []configWord      `toml:"words"`
}

type configWord struct {
	Text  string  `toml:"text"`
	Value float64 `toml:"value"`
}

// WordList converts the inline word entries to the core type.
func (c *Config) WordList() []wordcloud.Word {
	words := make([]wordcloud.Word, len(c.Words))
	for i, w := range c.Words {
		words[i] = wordcloud.Word{Text: w.Text, Value: w.Value}
	}
	return words
}

// ReadConfig parses a TOML config from bytes.
func ReadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// ReadConfigFile reads and parses a TOML config file.
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return ReadConfig(data)
}
