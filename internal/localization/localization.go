// Package localization loads user-facing strings from JSON locale files so
// the system texts the chat emits can be translated without code changes.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Localizer holds the loaded translations, keyed by language then by
// message key.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer loads every <lang>.json file in dir.
func NewLocalizer(dir string) (*Localizer, error) {
	l := &Localizer{translations: make(map[string]map[string]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".json")

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", entry.Name(), err)
		}
		var table map[string]string
		if err := json.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", entry.Name(), err)
		}
		l.translations[lang] = table
	}

	return l, nil
}

// GetString returns the text for key in lang, falling back to English and
// finally to the key itself.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if table, ok := l.translations[lang]; ok {
		if v, ok := table[key]; ok {
			return v
		}
	}
	if lang != "en" {
		if table, ok := l.translations["en"]; ok {
			if v, ok := table[key]; ok {
				return v
			}
		}
	}
	return key
}
