// Package i18n resolves user-facing error messages from embedded locale
// bundles. The bundle set is fixed at build time; unknown locales fall back
// to the configured default, unknown keys fall back to the key itself so a
// missing translation is visible rather than silent.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed locales/*.json
var bundleFS embed.FS

// Catalog holds one message table per locale.
type Catalog struct {
	bundles       map[string]map[string]string
	defaultLocale string
}

// New loads every embedded bundle. defaultLocale must name one of them.
func New(defaultLocale string) (*Catalog, error) {
	entries, err := fs.ReadDir(bundleFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("i18n: read bundles: %w", err)
	}

	bundles := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		locale := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		raw, err := bundleFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("i18n: read bundle %s: %w", entry.Name(), err)
		}
		table := make(map[string]string)
		if err := json.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("i18n: parse bundle %s: %w", entry.Name(), err)
		}
		bundles[locale] = table
	}

	if _, ok := bundles[defaultLocale]; !ok {
		return nil, fmt.Errorf("i18n: default locale %q has no bundle", defaultLocale)
	}

	return &Catalog{bundles: bundles, defaultLocale: defaultLocale}, nil
}

// Message resolves key in the given locale, formatting args into the
// template when present.
func (c *Catalog) Message(locale, key string, args ...any) string {
	table, ok := c.bundles[locale]
	if !ok {
		table = c.bundles[c.defaultLocale]
	}

	template, ok := table[key]
	if !ok {
		// fall back to the default bundle before giving up
		if template, ok = c.bundles[c.defaultLocale][key]; !ok {
			return key
		}
	}

	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}
