package domain

import "path"

// DefaultLocale is the locale edited directly by authors.
// All other locales are produced by the translation service.
const DefaultLocale = "en-US"

// Kind discriminates the three node types in the content tree.
type Kind int

const (
	// KindCategory is a top-level container of sections.
	KindCategory Kind = iota

	// KindSection is a container of articles inside a category.
	KindSection

	// KindArticle is a leaf Markdown document inside a section.
	KindArticle
)

// String returns the lowercase singular name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCategory:
		return "category"
	case KindSection:
		return "section"
	case KindArticle:
		return "article"
	default:
		return "unknown"
	}
}

// Container reports whether nodes of this kind can have children.
func (k Kind) Container() bool {
	return k == KindCategory || k == KindSection
}

// Variant is one locale's content for a node.
// For articles Body is Markdown; for containers it is the description.
type Variant struct {
	// Locale is the ISO form, e.g. "en-US" or "fr".
	Locale string

	// Title is the node name in this locale.
	Title string

	// Body is the Markdown body (articles) or description (containers).
	Body string
}

// Fingerprint returns the content hash of this variant.
// The hash covers the pre-substitution source text, never rendered output,
// so it is stable across image-root configuration changes.
func (v Variant) Fingerprint() string {
	return Fingerprint(v.Title, v.Body)
}

// Node is one category, section or article loaded from the local tree
// or listed from the remote hierarchy.
type Node struct {
	// Kind discriminates category, section and article.
	Kind Kind

	// Path is the node's root-relative location: a directory for
	// containers, the article base path (without extension) for articles.
	// It is the natural key within the local tree.
	Path string

	// Name is the directory or file base name.
	Name string

	// Variants maps ISO locale codes to per-locale content.
	// The DefaultLocale entry is the authoritative one.
	Variants map[string]Variant

	// Identity is the sidecar-backed remote linkage.
	// Nil means no sidecar exists: the node has never been synchronised.
	Identity *Identity

	// Incomplete lists structural problems found during load, such as a
	// missing descriptor. Consumed by doctor; not an error in itself.
	Incomplete []string

	// Children holds sections (for a category) or articles (for a section).
	Children []*Node

	// Parent is the containing node, nil for categories.
	Parent *Node
}

// Default returns the default-locale variant.
// The second return is false when the node is structurally incomplete
// and has no default variant yet.
func (n *Node) Default() (Variant, bool) {
	v, ok := n.Variants[DefaultLocale]
	return v, ok
}

// RemoteID returns the remote identifier, or 0 when the node has never
// been created remotely.
func (n *Node) RemoteID() int64 {
	if n.Identity == nil {
		return 0
	}
	return n.Identity.RemoteID
}

// SyncedHash returns the fingerprint recorded at the last successful
// synchronisation of the given locale, or "" if none was recorded.
func (n *Node) SyncedHash(locale string) string {
	if n.Identity == nil {
		return ""
	}
	return n.Identity.Hashes[locale]
}

// AddChild appends a child and sets its parent pointer.
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Walk visits the node and its descendants top-down.
// Visiting stops for a subtree when fn returns false for its root.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Orphan is a sidecar whose node files are gone: the node was deleted
// locally and its remote copy is pending deletion.
type Orphan struct {
	// Kind of the deleted node.
	Kind Kind

	// Path is the root-relative path the node used to occupy.
	Path string

	// Identity is the surviving sidecar content.
	Identity *Identity
}

// ChildKind returns the kind contained by a container kind.
func ChildKind(k Kind) Kind {
	switch k {
	case KindCategory:
		return KindSection
	default:
		return KindArticle
	}
}

// JoinPath joins root-relative path elements with forward slashes.
// Local paths use the slash form everywhere; only the filesystem
// adapter converts to the platform separator.
func JoinPath(elems ...string) string {
	return path.Join(elems...)
}
