package i18n

import "testing"

func TestTextFallbackChain(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Requested language wins.
	if got := b.Text("ru", "enter_name"); got != "Введите имя друга" {
		t.Errorf("ru lookup: got %q", got)
	}

	// Unknown language falls back to English.
	if got := b.Text("de", "enter_name"); got != "Enter your friend's name" {
		t.Errorf("fallback to en: got %q", got)
	}

	// Unknown key falls back to the key itself.
	if got := b.Text("en", "no_such_key"); got != "no_such_key" {
		t.Errorf("fallback to key: got %q", got)
	}
}

func TestAllLanguagesShareKeys(t *testing.T) {
	b, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	en := b.tables[defaultLang]
	for lang, table := range b.tables {
		for key := range en {
			if _, ok := table[key]; !ok {
				t.Errorf("language %q missing key %q", lang, key)
			}
		}
	}
}
