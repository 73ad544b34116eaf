package domain

// Identity is the persisted linkage between a local node and its remote
// copy, stored in a sidecar file colocated with the node.
type Identity struct {
	// RemoteID is the opaque identifier assigned by the remote service
	// at first create. Zero means not yet assigned. Once assigned it
	// never changes for the lifetime of the local path.
	RemoteID int64

	// Hashes records, per ISO locale, the content fingerprint at the
	// last successful synchronisation of that locale. A mismatch with
	// the current local fingerprint signals a pending change.
	Hashes map[string]string

	// TranslationIDs records the translation-service file ids for this
	// node's source files, keyed by part ("content", "body").
	TranslationIDs map[string]string

	// Meta is the opaque remote-state snapshot (timestamps, position,
	// visibility flags). It is passed through unmodified on update so
	// remote-only fields are never clobbered.
	Meta map[string]any
}

// Clone returns a deep copy. Sidecar writes always operate on a copy so
// a failed remote operation never leaves a half-updated identity in memory.
func (id *Identity) Clone() *Identity {
	if id == nil {
		return nil
	}
	out := &Identity{RemoteID: id.RemoteID}
	if id.Hashes != nil {
		out.Hashes = make(map[string]string, len(id.Hashes))
		for k, v := range id.Hashes {
			out.Hashes[k] = v
		}
	}
	if id.TranslationIDs != nil {
		out.TranslationIDs = make(map[string]string, len(id.TranslationIDs))
		for k, v := range id.TranslationIDs {
			out.TranslationIDs[k] = v
		}
	}
	if id.Meta != nil {
		out.Meta = make(map[string]any, len(id.Meta))
		for k, v := range id.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

// SetHash records a locale's fingerprint, allocating the map on first use.
func (id *Identity) SetHash(locale, hash string) {
	if id.Hashes == nil {
		id.Hashes = make(map[string]string)
	}
	id.Hashes[locale] = hash
}

// SetTranslationID records a translation-service file id for a part.
func (id *Identity) SetTranslationID(part, fileID string) {
	if id.TranslationIDs == nil {
		id.TranslationIDs = make(map[string]string)
	}
	id.TranslationIDs[part] = fileID
}
