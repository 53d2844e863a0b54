// Package i18n holds the user-facing translation table. The table is loaded
// once at startup from an embedded JSON file and is read-only afterwards.
package i18n

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

const defaultLang = "en"

//go:embed translations.json
var translationsJSON []byte

// Bundle is an immutable lookup of lang -> key -> text.
type Bundle struct {
	tables map[string]map[string]string
}

// Load parses the embedded translation table.
func Load() (*Bundle, error) {
	var tables map[string]map[string]string
	if err := json.Unmarshal(translationsJSON, &tables); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}
	if _, ok := tables[defaultLang]; !ok {
		return nil, fmt.Errorf("translations missing default language %q", defaultLang)
	}
	return &Bundle{tables: tables}, nil
}

// Text returns the translation for key in lang. Fallback chain:
// requested language -> default language -> the raw key itself.
func (b *Bundle) Text(lang, key string) string {
	if t, ok := b.tables[lang][key]; ok {
		return t
	}
	if t, ok := b.tables[defaultLang][key]; ok {
		return t
	}
	return key
}

// Has reports whether lang has its own translation table.
func (b *Bundle) Has(lang string) bool {
	_, ok := b.tables[lang]
	return ok
}
