package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/wordcloud/pkg/wordcloud"
)

// =============================================================================
// Word List Serialization API
// =============================================================================

// MarshalWords converts a word list to JSON bytes.
func MarshalWords(words []wordcloud.Word) ([]byte, error) {
	return json.MarshalIndent(words, "", "  ")
}

// ReadWords decodes a JSON word list from an io.Reader.
// Use ReadWordsFile for files or pass bytes.NewReader for in-memory data.
func ReadWords(r io.Reader) ([]wordcloud.Word, error) {
	var words []wordcloud.Word
	if err := json.NewDecoder(r).Decode(&words); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}
	return words, validateWords(words)
}

// ReadWordsFile reads a JSON file and returns the decoded word list.
func ReadWordsFile(path string) ([]wordcloud.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadWords(f)
}

// WriteWordsFile writes a word list to a JSON file.
// The file is created with 0644 permissions.
func WriteWordsFile(words []wordcloud.Word, path string) error {
	data, err := MarshalWords(words)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// validateWords rejects records that would silently produce an empty or
// nonsensical cloud.
func validateWords(words []wordcloud.Word) error {
	for i, w := range words {
		if w.Text == "" {
			return fmt.Errorf("word %d: empty text", i)
		}
		if w.Value < 0 {
			return fmt.Errorf("word %d (%q): negative value %g", i, w.Text, w.Value)
		}
	}
	return nil
}
