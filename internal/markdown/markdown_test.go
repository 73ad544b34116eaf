package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
)

func TestSubstituteImageRoot(t *testing.T) {
	src := "Intro ![diagram]($IMAGE_ROOT/img/arch.png) outro"

	out := SubstituteImageRoot(src, "https://cdn.example.com/help")
	assert.Equal(t, "Intro ![diagram](https://cdn.example.com/help/img/arch.png) outro", out)

	// No image root configured: source passes through untouched.
	assert.Equal(t, src, SubstituteImageRoot(src, ""))
}

func TestSubstituteImageRoot_OnlyInsideImageRefs(t *testing.T) {
	src := "The variable $IMAGE_ROOT is only expanded in ![x]($IMAGE_ROOT/a.png)."

	out := SubstituteImageRoot(src, "https://cdn")
	assert.Contains(t, out, "The variable $IMAGE_ROOT is only expanded")
	assert.Contains(t, out, "![x](https://cdn/a.png)")
}

func TestSubstituteImageRoot_FingerprintUnchanged(t *testing.T) {
	src := "![a]($IMAGE_ROOT/a.png)\n\nsome text"
	before := domain.Fingerprint("Title", src)

	_ = SubstituteImageRoot(src, "https://cdn.example.com")

	assert.Equal(t, before, domain.Fingerprint("Title", src))
}

func TestRender(t *testing.T) {
	out := Render("# Heading\n\nSome *emphasis* here.")

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "<em>emphasis</em>")
}

func TestFromHTML(t *testing.T) {
	out, err := FromHTML("<h1>Heading</h1><p>Some <em>emphasis</em> here.</p>")
	require.NoError(t, err)

	assert.Contains(t, out, "# Heading")
	// The converter emits underscore-delimited emphasis.
	assert.Contains(t, out, "_emphasis_")
}

func TestRoundTrip(t *testing.T) {
	src := "# Install\n\nRun the installer and *restart*."

	back, err := FromHTML(Render(src))
	require.NoError(t, err)

	for _, fragment := range []string{"# Install", "Run the installer", "_restart_"} {
		assert.True(t, strings.Contains(back, fragment), "missing %q in %q", fragment, back)
	}
}
