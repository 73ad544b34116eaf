package tree

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

const (
	groupDescriptor      = "__group__.json"
	groupSidecar         = ".group.meta"
	articleSidecarPrefix = ".article_"
	sidecarExt           = ".meta"
	bodyExt              = ".md"
	descriptorExt        = ".json"
)

// articleLayout resolves where a section's article files live. The two
// implementations cover the historical on-disk conventions; callers
// pick one per section with detectLayout.
type articleLayout interface {
	// articles lists article base names found in the section directory.
	articles(sectionDir string) ([]string, error)

	// bodyPath returns the Markdown file for an article and locale.
	bodyPath(sectionDir, name, locale string) string

	// descriptorPath returns the JSON descriptor for an article and locale.
	descriptorPath(sectionDir, name, locale string) string

	// locales lists the non-default locales with files for the
	// article, in the exact form they appear on disk. The translation
	// service writes lowercase region tags (pt-br); paths must be
	// built from the raw form, never a normalised one.
	locales(sectionDir, name string) ([]string, error)
}

// detectLayout inspects a section directory: any subdirectory named
// like a locale code means the subdirectory layout; otherwise the
// suffix layout, which is also what new sections get.
func detectLayout(sectionDir string) articleLayout {
	entries, err := os.ReadDir(sectionDir)
	if err != nil {
		return suffixLayout{}
	}
	for _, entry := range entries {
		if entry.IsDir() && domain.IsLocale(entry.Name()) {
			return subdirLayout{}
		}
	}
	return suffixLayout{}
}

// suffixLayout keeps every locale's files directly in the section
// directory, discriminated by a locale suffix before the extension:
// article.md, article.fr.md, article.fr.json.
type suffixLayout struct{}

func (suffixLayout) articles(sectionDir string) ([]string, error) {
	entries, err := os.ReadDir(sectionDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), bodyExt) {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), bodyExt)
		// article.fr.md is a translation of article.md, not an article.
		if name, locale, ok := splitLocaleSuffix(base); ok && domain.IsLocale(locale) && name != "" {
			continue
		}
		names = append(names, base)
	}
	sort.Strings(names)
	return names, nil
}

func (suffixLayout) bodyPath(sectionDir, name, locale string) string {
	if locale == domain.DefaultLocale {
		return filepath.Join(sectionDir, name+bodyExt)
	}
	return filepath.Join(sectionDir, name+"."+locale+bodyExt)
}

func (suffixLayout) descriptorPath(sectionDir, name, locale string) string {
	if locale == domain.DefaultLocale {
		return filepath.Join(sectionDir, name+descriptorExt)
	}
	return filepath.Join(sectionDir, name+"."+locale+descriptorExt)
}

func (suffixLayout) locales(sectionDir, name string) ([]string, error) {
	entries, err := os.ReadDir(sectionDir)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base := entry.Name()
		switch {
		case strings.HasSuffix(base, bodyExt):
			base = strings.TrimSuffix(base, bodyExt)
		case strings.HasSuffix(base, descriptorExt):
			base = strings.TrimSuffix(base, descriptorExt)
		default:
			continue
		}
		prefix, locale, ok := splitLocaleSuffix(base)
		if ok && prefix == name && domain.IsLocale(locale) && domain.ToISOLocale(locale) != domain.DefaultLocale {
			seen[locale] = true
		}
	}
	return sortedKeys(seen), nil
}

// subdirLayout nests each locale in its own subdirectory:
// section/en-US/article.md, section/fr/article.md.
type subdirLayout struct{}

func (subdirLayout) articles(sectionDir string) ([]string, error) {
	entries, err := os.ReadDir(sectionDir)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, entry := range entries {
		if !entry.IsDir() || !domain.IsLocale(entry.Name()) {
			continue
		}
		files, err := os.ReadDir(filepath.Join(sectionDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if !file.IsDir() && strings.HasSuffix(file.Name(), bodyExt) {
				seen[strings.TrimSuffix(file.Name(), bodyExt)] = true
			}
		}
	}
	return sortedKeys(seen), nil
}

func (subdirLayout) bodyPath(sectionDir, name, locale string) string {
	return filepath.Join(sectionDir, locale, name+bodyExt)
}

func (subdirLayout) descriptorPath(sectionDir, name, locale string) string {
	return filepath.Join(sectionDir, locale, name+descriptorExt)
}

func (subdirLayout) locales(sectionDir, name string) ([]string, error) {
	entries, err := os.ReadDir(sectionDir)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, entry := range entries {
		locale := entry.Name()
		if !entry.IsDir() || !domain.IsLocale(locale) || domain.ToISOLocale(locale) == domain.DefaultLocale {
			continue
		}
		if _, err := os.Stat(filepath.Join(sectionDir, locale, name+bodyExt)); err == nil {
			seen[locale] = true
		}
	}
	return sortedKeys(seen), nil
}

// splitLocaleSuffix splits "article.fr" into ("article", "fr", true).
func splitLocaleSuffix(base string) (name, locale string, ok bool) {
	i := strings.LastIndex(base, ".")
	if i <= 0 || i == len(base)-1 {
		return base, "", false
	}
	return base[:i], base[i+1:], true
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
