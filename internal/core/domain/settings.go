package domain

import "fmt"

// Settings is the read-only configuration for a run. It is loaded once
// and passed explicitly into the reconciler and adapters; there is no
// ambient configuration state.
type Settings struct {
	// Root is the local content tree root directory.
	Root string `toml:"root"`

	// Subdomain is the help-center tenant, as in <subdomain>.example.com.
	Subdomain string `toml:"subdomain"`

	// User is the help-center account used for basic auth.
	User string `toml:"user"`

	// Token is the help-center API token or password.
	Token string `toml:"token"`

	// TranslationAPIKey authenticates against the translation service.
	TranslationAPIKey string `toml:"translation_api_key"`

	// ImageRoot is the base URL substituted for the image-root
	// placeholder in Markdown image references before upload.
	ImageRoot string `toml:"image_root"`

	// DisableArticleComments pushes comments_disabled on exported articles.
	DisableArticleComments bool `toml:"disable_article_comments"`
}

// Validate checks the fields every remote-touching command needs.
func (s Settings) Validate() error {
	if s.Root == "" {
		return fmt.Errorf("%w: root directory not set", ErrInvalidInput)
	}
	if s.Subdomain == "" {
		return fmt.Errorf("%w: help-center subdomain not set", ErrInvalidInput)
	}
	if s.User == "" || s.Token == "" {
		return fmt.Errorf("%w: help-center credentials not set", ErrInvalidInput)
	}
	return nil
}
