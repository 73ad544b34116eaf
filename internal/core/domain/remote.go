package domain

// RemoteNode is one node as listed by the remote hierarchy.
type RemoteNode struct {
	// ID is the remote identifier.
	ID int64

	// Title is the default-locale name.
	Title string

	// Description is the container description. Empty for articles.
	Description string

	// Body is the rendered article body (HTML). Empty for containers.
	Body string

	// Position is the remote ordering hint.
	Position int

	// Raw is the full remote object, preserved verbatim so updates can
	// pass through fields the engine does not model.
	Raw map[string]any
}

// NodePayload is the content pushed on a remote create or update.
type NodePayload struct {
	// Title is the default-locale name.
	Title string

	// Body is the description (containers) or rendered body (articles).
	Body string

	// Locale is the remote lowercase locale of this payload.
	Locale string
}

// TranslationPayload is one locale's content for a translation upsert.
type TranslationPayload struct {
	// Title is the translated name.
	Title string

	// Body is the translated description or rendered body.
	Body string
}
