// Package markdown converts article bodies between their on-disk
// Markdown form and the rendered HTML the remote service stores, and
// substitutes the image-root placeholder in image references.
package markdown

import (
	"regexp"

	htmltomd "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ImageRootToken is the placeholder authors embed in Markdown image
// references. It is substituted with the configured image root before
// upload, never in the on-disk source.
const ImageRootToken = "$IMAGE_ROOT"

var imageRefPattern = regexp.MustCompile(`(!\[[^\]]*\]\()\$IMAGE_ROOT([^)]*\))`)

// SubstituteImageRoot replaces the image-root placeholder in image
// references with the configured base URL. The input is returned
// unchanged when no image root is configured. Substitution always
// operates on a copy of the source; content fingerprints are computed
// from the pre-substitution text.
func SubstituteImageRoot(body, imageRoot string) string {
	if imageRoot == "" {
		return body
	}
	return imageRefPattern.ReplaceAllString(body, "${1}"+imageRoot+"${2}")
}

// Render converts Markdown to the HTML body the remote service stores.
// Parser instances are single-use, so one is built per call.
func Render(src string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(src), p, r))
}

// FromHTML converts a remote HTML body back to Markdown for local
// storage during import.
func FromHTML(src string) (string, error) {
	conv := htmltomd.NewConverter("", true, nil)
	return conv.ConvertString(src)
}
