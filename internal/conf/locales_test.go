package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLocales_EnglishComplete(t *testing.T) {
	c := DefaultLocalesConfig()
	for key := range englishStrings {
		if c.Get("eng", key) == key {
			t.Errorf("missing built-in string for %q", key)
		}
	}
}

func TestLocales_FallbackChain(t *testing.T) {
	c := DefaultLocalesConfig()
	c.Languages["ru"] = map[string]string{"import_success": "ГОТОВО"}

	if got := c.Get("ru", "import_success"); got != "ГОТОВО" {
		t.Errorf("ru string = %q", got)
	}
	// Missing ru string falls back to English.
	if got := c.Get("ru", "import_failed"); got != englishStrings["import_failed"] {
		t.Errorf("fallback = %q", got)
	}
	// Unknown key falls back to the key itself.
	if got := c.Get("eng", "no_such_key"); got != "no_such_key" {
		t.Errorf("key fallback = %q", got)
	}
}

func TestLocales_Format(t *testing.T) {
	c := DefaultLocalesConfig()
	c.Languages["eng"]["warned"] = "Warned {user_id} ({count}/{warn_limit})"

	got := c.Format("eng", "warned", map[string]string{
		"user_id":    "42",
		"count":      "1",
		"warn_limit": "3",
	})
	if got != "Warned 42 (1/3)" {
		t.Errorf("Format = %q", got)
	}
}

func TestLoadLocales_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locales.yaml")
	yaml := `languages:
  eng:
    import_success: "done!"
  de:
    import_success: "fertig!"
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadLocalesConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Get("eng", "import_success"); got != "done!" {
		t.Errorf("override = %q", got)
	}
	if got := c.Get("de", "import_success"); got != "fertig!" {
		t.Errorf("de string = %q", got)
	}
	// Untouched English strings survive the merge.
	if got := c.Get("eng", "import_failed"); got != englishStrings["import_failed"] {
		t.Errorf("merge lost defaults: %q", got)
	}
}

func TestLoadLocales_MissingFileUsesDefaults(t *testing.T) {
	c, err := LoadLocalesConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Get("eng", "import_success") != englishStrings["import_success"] {
		t.Error("defaults not applied")
	}
}
