package helpcenter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/core/ports/driven"
)

// Store implements the remote hierarchy port on top of Client.
type Store struct {
	client *Client
	locale string
}

var _ driven.RemoteStore = (*Store)(nil)

// NewStore creates a Store. Content endpoints are addressed in the
// remote's lowercase default locale.
func NewStore(client *Client) *Store {
	return &Store{
		client: client,
		locale: domain.ToRemoteLocale(domain.DefaultLocale),
	}
}

// plural maps a kind to its URL path segment.
func plural(kind domain.Kind) string {
	switch kind {
	case domain.KindCategory:
		return "categories"
	case domain.KindSection:
		return "sections"
	default:
		return "articles"
	}
}

// listPage is one page of a list endpoint. The service keys the item
// array by the plural kind name, so all three arrays are declared and
// at most one is populated.
type listPage struct {
	Categories []json.RawMessage `json:"categories"`
	Sections   []json.RawMessage `json:"sections"`
	Articles   []json.RawMessage `json:"articles"`
	NextPage   string            `json:"next_page"`
}

func (p *listPage) items(kind domain.Kind) []json.RawMessage {
	switch kind {
	case domain.KindCategory:
		return p.Categories
	case domain.KindSection:
		return p.Sections
	default:
		return p.Articles
	}
}

// ListChildren lists all nodes of kind under parentID, following
// pagination links.
func (s *Store) ListChildren(ctx context.Context, kind domain.Kind, parentID int64) ([]domain.RemoteNode, error) {
	var path string
	switch kind {
	case domain.KindCategory:
		path = fmt.Sprintf("/%s/categories.json?per_page=%d", s.locale, perPage)
	case domain.KindSection:
		path = fmt.Sprintf("/%s/categories/%d/sections.json?per_page=%d", s.locale, parentID, perPage)
	default:
		path = fmt.Sprintf("/%s/sections/%d/articles.json?per_page=%d", s.locale, parentID, perPage)
	}

	var nodes []domain.RemoteNode
	for path != "" {
		select {
		case <-ctx.Done():
			return nodes, ctx.Err()
		default:
		}

		var page listPage
		if err := s.client.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}
		for _, raw := range page.items(kind) {
			node, err := parseNode(kind, raw)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
		path = page.NextPage
	}
	return nodes, nil
}

// Create creates a node under parentID and returns it with its
// assigned ID.
func (s *Store) Create(ctx context.Context, kind domain.Kind, parentID int64, payload domain.NodePayload) (*domain.RemoteNode, error) {
	var path string
	switch kind {
	case domain.KindCategory:
		path = fmt.Sprintf("/%s/categories.json", s.locale)
	case domain.KindSection:
		path = fmt.Sprintf("/%s/categories/%d/sections.json", s.locale, parentID)
	default:
		path = fmt.Sprintf("/%s/sections/%d/articles.json", s.locale, parentID)
	}

	var out map[string]json.RawMessage
	if err := s.client.do(ctx, http.MethodPost, path, envelope(kind, payload), &out); err != nil {
		return nil, err
	}
	return unwrapNode(kind, out)
}

// Update replaces the default-locale content of a node.
func (s *Store) Update(ctx context.Context, kind domain.Kind, id int64, payload domain.NodePayload) (*domain.RemoteNode, error) {
	path := fmt.Sprintf("/%s/%s/%d.json", s.locale, plural(kind), id)

	var out map[string]json.RawMessage
	if err := s.client.do(ctx, http.MethodPut, path, envelope(kind, payload), &out); err != nil {
		return nil, err
	}
	return unwrapNode(kind, out)
}

// Delete removes a node. Deleting a container cascades remotely.
func (s *Store) Delete(ctx context.Context, kind domain.Kind, id int64) error {
	path := fmt.Sprintf("/%s/%d.json", plural(kind), id)
	return s.client.do(ctx, http.MethodDelete, path, nil, nil)
}

// ListTranslations returns existing translations keyed by remote locale.
func (s *Store) ListTranslations(ctx context.Context, kind domain.Kind, id int64) (map[string]domain.TranslationPayload, error) {
	path := fmt.Sprintf("/%s/%d/translations.json?per_page=%d", plural(kind), id, perPage)

	translations := map[string]domain.TranslationPayload{}
	for path != "" {
		var page struct {
			Translations []struct {
				Locale string `json:"locale"`
				Title  string `json:"title"`
				Body   string `json:"body"`
			} `json:"translations"`
			NextPage string `json:"next_page"`
		}
		if err := s.client.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}
		for _, t := range page.Translations {
			translations[t.Locale] = domain.TranslationPayload{Title: t.Title, Body: t.Body}
		}
		path = page.NextPage
	}
	return translations, nil
}

// UpsertTranslation creates or updates one locale's translation. The
// service distinguishes the two, so missing locales are fetched first
// to pick the verb.
func (s *Store) UpsertTranslation(ctx context.Context, kind domain.Kind, id int64, locale string, t domain.TranslationPayload) error {
	missing, err := s.missingLocales(ctx, kind, id)
	if err != nil {
		return err
	}

	body := map[string]any{
		"translation": map[string]any{
			"title":  t.Title,
			"body":   t.Body,
			"locale": locale,
		},
	}
	if missing[locale] {
		path := fmt.Sprintf("/%s/%d/translations.json", plural(kind), id)
		return s.client.do(ctx, http.MethodPost, path, body, nil)
	}
	path := fmt.Sprintf("/%s/%d/translations/%s.json", plural(kind), id, locale)
	return s.client.do(ctx, http.MethodPut, path, body, nil)
}

func (s *Store) missingLocales(ctx context.Context, kind domain.Kind, id int64) (map[string]bool, error) {
	path := fmt.Sprintf("/%s/%d/translations/missing.json", plural(kind), id)

	var out struct {
		Locales []string `json:"locales"`
	}
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	missing := make(map[string]bool, len(out.Locales))
	for _, locale := range out.Locales {
		missing[locale] = true
	}
	return missing, nil
}

// SetCommentsDisabled toggles comments on an article.
func (s *Store) SetCommentsDisabled(ctx context.Context, id int64, disabled bool) error {
	path := fmt.Sprintf("/%s/articles/%d.json", s.locale, id)
	body := map[string]any{
		"article": map[string]any{"comments_disabled": disabled},
	}
	return s.client.do(ctx, http.MethodPut, path, body, nil)
}

// envelope wraps a payload in the service's {"<kind>": {...}} envelope.
// Containers name their content "name"/"description", articles
// "title"/"body".
func envelope(kind domain.Kind, payload domain.NodePayload) map[string]any {
	inner := map[string]any{"locale": payload.Locale}
	if kind.Container() {
		inner["name"] = payload.Title
		inner["description"] = payload.Body
	} else {
		inner["title"] = payload.Title
		inner["body"] = payload.Body
	}
	return map[string]any{kind.String(): inner}
}

// unwrapNode extracts the node object from a create/update response.
func unwrapNode(kind domain.Kind, out map[string]json.RawMessage) (*domain.RemoteNode, error) {
	raw, ok := out[kind.String()]
	if !ok {
		return nil, fmt.Errorf("%w: response missing %q object", domain.ErrRemoteOperation, kind.String())
	}
	node, err := parseNode(kind, raw)
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// parseNode decodes one remote object, keeping the full object in Raw
// so callers can pass through fields the engine does not model.
func parseNode(kind domain.Kind, raw json.RawMessage) (domain.RemoteNode, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.RemoteNode{}, fmt.Errorf("%w: decode %s: %v", domain.ErrRemoteOperation, kind.String(), err)
	}

	node := domain.RemoteNode{Raw: fields}
	if id, ok := fields["id"].(float64); ok {
		node.ID = int64(id)
	}
	if node.ID == 0 {
		return domain.RemoteNode{}, fmt.Errorf("%w: %s object has no id", domain.ErrRemoteOperation, kind.String())
	}
	if pos, ok := fields["position"].(float64); ok {
		node.Position = int(pos)
	}
	if kind.Container() {
		node.Title, _ = fields["name"].(string)
		node.Description, _ = fields["description"].(string)
	} else {
		node.Title, _ = fields["title"].(string)
		node.Body, _ = fields["body"].(string)
	}
	return node, nil
}
