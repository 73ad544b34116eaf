// Package tree is the filesystem adapter for the local content tree.
//
// On-disk layout: a category is a directory at depth one below the
// root, a section a directory inside it. Both carry a __group__.json
// descriptor ({"name", "description"}), optional per-locale
// __group__.<locale>.json variants and a .group.meta sidecar. Articles
// are Markdown files inside a section, in one of two layouts observed
// across the tree's history:
//
//   - suffix layout: section/article.md with article.fr.md and
//     article.fr.json next to it
//   - subdirectory layout: section/en-US/article.md with
//     section/fr/article.md
//
// Both layouts are supported behind one strategy interface, selected
// per section by inspecting the directory shape. New sections are
// written in the suffix layout.
//
// Sidecars (.group.meta, .article_<name>.meta) record the remote ID,
// per-locale content fingerprints lastly synchronised, translation file
// ids and the opaque remote metadata snapshot. They are internal files,
// written atomically, never hand-edited.
package tree
