package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/logger"
)

// WriteNode writes a node's descriptor and body files for every
// variant, overwriting existing content. Import uses this; the remote
// listing is authoritative there.
func (s *Store) WriteNode(_ context.Context, node *domain.Node) error {
	for _, locale := range variantLocales(node) {
		variant := node.Variants[locale]
		for _, file := range s.nodeFiles(node, variant) {
			if err := writeFile(file.path, file.data); err != nil {
				return err
			}
			logger.Debug("wrote %s", file.path)
		}
	}
	return nil
}

// WriteMissing writes only the node's default-locale files that are
// absent and reports their root-relative paths. Doctor and add rely on
// it never touching an existing file.
func (s *Store) WriteMissing(_ context.Context, node *domain.Node) ([]string, error) {
	variant, ok := node.Default()
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s variant to write", domain.ErrInvalidInput, node.Path, domain.DefaultLocale)
	}

	var written []string
	for _, file := range s.nodeFiles(node, variant) {
		if _, err := os.Stat(file.path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return nil, err
		}
		if err := writeFile(file.path, file.data); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(s.root, file.path)
		if err != nil {
			return nil, err
		}
		written = append(written, filepath.ToSlash(rel))
	}
	return written, nil
}

// RemoveNode deletes a node's files: the whole directory for a
// container, every locale's files for an article. The sidecar and any
// ancestor directory are left for the identity store and the caller.
func (s *Store) RemoveNode(_ context.Context, node *domain.Node) error {
	if node.Kind.Container() {
		return os.RemoveAll(s.abs(node.Path))
	}

	sectionDir := filepath.Dir(s.abs(node.Path))
	layout := detectLayout(sectionDir)
	locales, err := layout.locales(sectionDir, node.Name)
	if err != nil {
		return err
	}
	for _, locale := range append(locales, domain.DefaultLocale) {
		if err := removeIfExists(layout.bodyPath(sectionDir, node.Name, locale)); err != nil {
			return err
		}
		if err := removeIfExists(layout.descriptorPath(sectionDir, node.Name, locale)); err != nil {
			return err
		}
	}
	return nil
}

// ContentPaths returns the default-locale source files registered with
// the translation service, as root-relative slash paths.
func (s *Store) ContentPaths(node *domain.Node) map[string]string {
	paths := map[string]string{}
	if node.Kind.Container() {
		paths["content"] = domain.JoinPath(node.Path, groupDescriptor)
		return paths
	}
	sectionDir := filepath.Dir(s.abs(node.Path))
	layout := detectLayout(sectionDir)
	content, _ := filepath.Rel(s.root, layout.descriptorPath(sectionDir, node.Name, domain.DefaultLocale))
	body, _ := filepath.Rel(s.root, layout.bodyPath(sectionDir, node.Name, domain.DefaultLocale))
	paths["content"] = filepath.ToSlash(content)
	paths["body"] = filepath.ToSlash(body)
	return paths
}

// nodeFile is one on-disk file belonging to a node variant.
type nodeFile struct {
	path string
	data []byte
}

// nodeFiles lists the files for one variant of a node: descriptor (and
// body for articles), placed by the section's detected layout.
func (s *Store) nodeFiles(node *domain.Node, variant domain.Variant) []nodeFile {
	if node.Kind.Container() {
		name := groupDescriptor
		if variant.Locale != domain.DefaultLocale {
			base := groupDescriptor[:len(groupDescriptor)-len(descriptorExt)]
			name = base + "." + variant.Locale + descriptorExt
		}
		data, _ := json.MarshalIndent(groupContent{Name: variant.Title, Description: variant.Body}, "", "    ")
		return []nodeFile{{path: filepath.Join(s.abs(node.Path), name), data: append(data, '\n')}}
	}

	sectionDir := filepath.Dir(s.abs(node.Path))
	layout := detectLayout(sectionDir)
	descriptor, _ := json.MarshalIndent(articleContent{Name: variant.Title}, "", "    ")
	return []nodeFile{
		{path: layout.descriptorPath(sectionDir, node.Name, variant.Locale), data: append(descriptor, '\n')},
		{path: layout.bodyPath(sectionDir, node.Name, variant.Locale), data: []byte(variant.Body)},
	}
}

// variantLocales orders locales default-first so a partial write still
// leaves a loadable node.
func variantLocales(node *domain.Node) []string {
	var locales []string
	if _, ok := node.Default(); ok {
		locales = append(locales, domain.DefaultLocale)
	}
	var rest []string
	for locale := range node.Variants {
		if locale != domain.DefaultLocale {
			rest = append(rest, locale)
		}
	}
	sort.Strings(rest)
	return append(locales, rest...)
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
