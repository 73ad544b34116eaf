package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/helpsync-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.TreeStore = (*Store)(nil)

// Store loads and writes the local content tree rooted at one
// directory. Directory depth discriminates kinds: depth one is a
// category, depth two a section, Markdown files inside are articles.
type Store struct {
	root string
	ids  *SidecarStore
}

// NewStore creates a tree store rooted at root.
func NewStore(root string) *Store {
	return &Store{root: root, ids: NewSidecarStore(root)}
}

// groupContent is the container descriptor schema. Unknown extra keys
// are preserved through Extra for round-trip stable re-serialisation.
type groupContent struct {
	Name        string
	Description string
	Extra       map[string]any
}

func (g *groupContent) UnmarshalJSON(data []byte) error {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	name, ok := raw["name"].(string)
	if !ok || name == "" {
		return fmt.Errorf("missing required field %q", "name")
	}
	g.Name = name
	g.Description, _ = raw["description"].(string)
	delete(raw, "name")
	delete(raw, "description")
	if len(raw) > 0 {
		g.Extra = raw
	}
	return nil
}

func (g groupContent) MarshalJSON() ([]byte, error) {
	raw := map[string]any{"name": g.Name, "description": g.Description}
	for k, v := range g.Extra {
		raw[k] = v
	}
	return json.Marshal(raw)
}

// articleContent is the article descriptor schema.
type articleContent struct {
	Name string `json:"name"`
}

// Load walks the root and returns the categories with their subtrees.
func (s *Store) Load(ctx context.Context) ([]*domain.Node, error) {
	names, err := s.childDirs("")
	if err != nil {
		return nil, err
	}
	var categories []*domain.Node
	for _, name := range names {
		category, err := s.loadContainer(ctx, domain.KindCategory, nil, name)
		if err != nil {
			return nil, err
		}
		if err := s.fillSections(ctx, category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// LoadPath loads the node at a root-relative path with its descendants.
func (s *Store) LoadPath(ctx context.Context, relPath string) (*domain.Node, error) {
	segments := strings.Split(strings.Trim(filepath.ToSlash(relPath), "/"), "/")
	if len(segments) == 0 || segments[0] == "" || len(segments) > 3 {
		return nil, fmt.Errorf("%w: path %q", domain.ErrInvalidInput, relPath)
	}

	category, err := s.loadContainer(ctx, domain.KindCategory, nil, segments[0])
	if err != nil {
		return nil, err
	}
	if len(segments) == 1 {
		if err := s.fillSections(ctx, category); err != nil {
			return nil, err
		}
		return category, nil
	}

	section, err := s.loadContainer(ctx, domain.KindSection, category, segments[1])
	if err != nil {
		return nil, err
	}
	if len(segments) == 2 {
		if err := s.fillArticles(ctx, section); err != nil {
			return nil, err
		}
		return section, nil
	}

	name := strings.TrimSuffix(segments[2], bodyExt)
	layout := detectLayout(s.abs(section.Path))
	names, err := layout.articles(s.abs(section.Path))
	if err != nil {
		return nil, err
	}
	for _, articleName := range names {
		if articleName == name {
			return s.loadArticle(ctx, section, layout, articleName)
		}
	}
	return nil, fmt.Errorf("%w: article %s", domain.ErrNotFound, relPath)
}

func (s *Store) fillSections(ctx context.Context, category *domain.Node) error {
	names, err := s.childDirs(category.Path)
	if err != nil {
		return err
	}
	for _, name := range names {
		section, err := s.loadContainer(ctx, domain.KindSection, category, name)
		if err != nil {
			return err
		}
		category.AddChild(section)
		if err := s.fillArticles(ctx, section); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) fillArticles(ctx context.Context, section *domain.Node) error {
	layout := detectLayout(s.abs(section.Path))
	names, err := layout.articles(s.abs(section.Path))
	if err != nil {
		return err
	}
	for _, name := range names {
		article, err := s.loadArticle(ctx, section, layout, name)
		if err != nil {
			return err
		}
		section.AddChild(article)
	}
	return nil
}

// loadContainer reads one category or section directory. A missing
// descriptor flags the node structurally incomplete; a descriptor that
// exists but does not parse is fatal because a corrupt ancestor
// invalidates descendant identity.
func (s *Store) loadContainer(ctx context.Context, kind domain.Kind, parent *domain.Node, name string) (*domain.Node, error) {
	node := &domain.Node{
		Kind:     kind,
		Name:     name,
		Path:     name,
		Variants: map[string]domain.Variant{},
	}
	if parent != nil {
		node.Path = domain.JoinPath(parent.Path, name)
		node.Parent = parent
	}
	dir := s.abs(node.Path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind, node.Path)
	}

	content, found, err := s.readGroupContent(filepath.Join(dir, groupDescriptor))
	if err != nil {
		return nil, err
	}
	if found {
		node.Variants[domain.DefaultLocale] = domain.Variant{
			Locale: domain.DefaultLocale,
			Title:  content.Name,
			Body:   content.Description,
		}
	} else {
		node.Incomplete = append(node.Incomplete, "missing descriptor "+groupDescriptor)
	}

	if err := s.loadGroupTranslations(node, dir); err != nil {
		return nil, err
	}

	id, err := s.ids.Get(ctx, kind, node.Path)
	if err != nil {
		return nil, err
	}
	node.Identity = id
	logger.Debug("loaded %s %s", kind, node.Path)
	return node, nil
}

// loadGroupTranslations picks up __group__.<locale>.json variants.
func (s *Store) loadGroupTranslations(node *domain.Node, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(groupDescriptor, descriptorExt)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, base+".") || !strings.HasSuffix(name, descriptorExt) {
			continue
		}
		locale := strings.TrimSuffix(strings.TrimPrefix(name, base+"."), descriptorExt)
		if !domain.IsLocale(locale) {
			continue
		}
		content, found, err := s.readGroupContent(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if !found {
			continue
		}
		iso := domain.ToISOLocale(locale)
		node.Variants[iso] = domain.Variant{Locale: iso, Title: content.Name, Body: content.Description}
	}
	return nil
}

// loadArticle reads one article across its locales using the section's
// detected layout. The default-locale title falls back to the file base
// name when the descriptor is absent; the descriptor is then flagged
// for doctor.
func (s *Store) loadArticle(ctx context.Context, section *domain.Node, layout articleLayout, name string) (*domain.Node, error) {
	node := &domain.Node{
		Kind:     domain.KindArticle,
		Name:     name,
		Path:     domain.JoinPath(section.Path, name),
		Parent:   section,
		Variants: map[string]domain.Variant{},
	}
	sectionDir := s.abs(section.Path)

	if err := s.loadArticleVariant(node, layout, sectionDir, domain.DefaultLocale); err != nil {
		return nil, err
	}
	if _, ok := node.Default(); !ok {
		node.Incomplete = append(node.Incomplete, "missing "+domain.DefaultLocale+" variant")
	}

	locales, err := layout.locales(sectionDir, name)
	if err != nil {
		return nil, err
	}
	for _, locale := range locales {
		if err := s.loadArticleVariant(node, layout, sectionDir, locale); err != nil {
			return nil, err
		}
	}

	id, err := s.ids.Get(ctx, domain.KindArticle, node.Path)
	if err != nil {
		return nil, err
	}
	node.Identity = id
	logger.Debug("loaded article %s", node.Path)
	return node, nil
}

// loadArticleVariant reads one locale's files. locale is the raw
// on-disk form; the variant is keyed by its ISO form so pt-br and
// pt-BR files land on the same variant.
func (s *Store) loadArticleVariant(node *domain.Node, layout articleLayout, sectionDir, locale string) error {
	iso := domain.ToISOLocale(locale)
	bodyPath := layout.bodyPath(sectionDir, node.Name, locale)
	body, err := os.ReadFile(bodyPath)
	if os.IsNotExist(err) {
		if iso == domain.DefaultLocale {
			return nil
		}
		body = nil
	} else if err != nil {
		return err
	}

	title := node.Name
	descriptorPath := layout.descriptorPath(sectionDir, node.Name, locale)
	data, err := os.ReadFile(descriptorPath)
	switch {
	case os.IsNotExist(err):
		if iso == domain.DefaultLocale {
			node.Incomplete = append(node.Incomplete, "missing descriptor "+filepath.Base(descriptorPath))
		}
	case err != nil:
		return err
	default:
		var content articleContent
		if jsonErr := json.Unmarshal(data, &content); jsonErr != nil || content.Name == "" {
			return fmt.Errorf("%w: %s: invalid article descriptor", domain.ErrMalformedTree, descriptorPath)
		}
		title = content.Name
	}

	node.Variants[iso] = domain.Variant{Locale: iso, Title: title, Body: string(body)}
	return nil
}

func (s *Store) readGroupContent(path string) (groupContent, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return groupContent{}, false, nil
	}
	if err != nil {
		return groupContent{}, false, err
	}
	var content groupContent
	if err := json.Unmarshal(data, &content); err != nil {
		return groupContent{}, false, fmt.Errorf("%w: %s: %v", domain.ErrMalformedTree, path, err)
	}
	return content, true, nil
}

func (s *Store) childDirs(relPath string) ([]string, error) {
	entries, err := os.ReadDir(s.abs(relPath))
	if err != nil {
		return nil, err
	}
	// Locale subdirectories only ever appear inside sections, never at
	// the levels listed here, so a short name like "it" is a real
	// container and must not be filtered out.
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) abs(relPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(relPath))
}
