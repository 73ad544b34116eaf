package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/helpsync-cli/internal/core/domain"
	"github.com/custodia-labs/helpsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/helpsync-cli/internal/logger"
)

// Ensure SidecarStore implements the interface.
var _ driven.IdentityStore = (*SidecarStore)(nil)

// SidecarStore persists node identities in dot-prefixed JSON sidecar
// files colocated with each node. It never touches the network.
type SidecarStore struct {
	root string
}

// NewSidecarStore creates an identity store rooted at the tree root.
func NewSidecarStore(root string) *SidecarStore {
	return &SidecarStore{root: root}
}

// sidecarFile is the on-disk sidecar schema. Internal format: the file
// is machine-written only.
type sidecarFile struct {
	RemoteID       int64             `json:"id,omitempty"`
	Hashes         map[string]string `json:"content_hashes,omitempty"`
	TranslationIDs map[string]string `json:"webtranslateit_ids,omitempty"`
	Meta           map[string]any    `json:"meta,omitempty"`
}

// sidecarPath maps a node's kind and root-relative path to its sidecar
// file. Containers keep .group.meta inside their directory; articles
// keep .article_<name>.meta in the section directory.
func (s *SidecarStore) sidecarPath(kind domain.Kind, relPath string) string {
	full := filepath.Join(s.root, filepath.FromSlash(relPath))
	if kind.Container() {
		return filepath.Join(full, groupSidecar)
	}
	return filepath.Join(filepath.Dir(full), articleSidecarPrefix+filepath.Base(full)+sidecarExt)
}

// Get loads a sidecar. A missing sidecar is (nil, nil): the normal
// state for a node that has never been synchronised.
func (s *SidecarStore) Get(_ context.Context, kind domain.Kind, relPath string) (*domain.Identity, error) {
	return readSidecar(s.sidecarPath(kind, relPath))
}

// Save writes the sidecar atomically: the content goes to a temporary
// file in the same directory which is then renamed over the target, so
// a crash never leaves a torn identity record.
func (s *SidecarStore) Save(_ context.Context, kind domain.Kind, relPath string, id *domain.Identity) error {
	return writeSidecar(s.sidecarPath(kind, relPath), id)
}

// Delete removes a sidecar. A missing sidecar is not an error.
func (s *SidecarStore) Delete(_ context.Context, kind domain.Kind, relPath string) error {
	err := os.Remove(s.sidecarPath(kind, relPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DeleteTree removes every sidecar at or below the given path.
func (s *SidecarStore) DeleteTree(_ context.Context, relPath string) error {
	dir := filepath.Join(s.root, filepath.FromSlash(relPath))
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		name := entry.Name()
		if name == groupSidecar || (strings.HasPrefix(name, articleSidecarPrefix) && strings.HasSuffix(name, sidecarExt)) {
			return os.Remove(path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Orphans walks the root for article sidecars whose body files are
// gone in every layout: articles deleted locally whose remote copies
// await deletion. Container directories carry their own sidecar, so
// deleting one removes its identity record with it; a surviving
// directory missing only its descriptor is doctor territory, not a
// deletion.
func (s *SidecarStore) Orphans(_ context.Context) ([]domain.Orphan, error) {
	var orphans []domain.Orphan

	err := filepath.WalkDir(s.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || path == s.root {
			return nil
		}
		name := entry.Name()
		if !strings.HasPrefix(name, articleSidecarPrefix) || !strings.HasSuffix(name, sidecarExt) {
			return nil
		}
		dir := filepath.Dir(path)
		base := strings.TrimSuffix(strings.TrimPrefix(name, articleSidecarPrefix), sidecarExt)
		if articleFilesExist(dir, base) {
			return nil
		}
		relDir, relErr := filepath.Rel(s.root, dir)
		if relErr != nil {
			return relErr
		}
		id, idErr := readSidecar(path)
		if idErr != nil {
			return idErr
		}
		relPath := filepath.ToSlash(filepath.Join(relDir, base))
		logger.Debug("orphaned sidecar for article %s", relPath)
		orphans = append(orphans, domain.Orphan{Kind: domain.KindArticle, Path: relPath, Identity: id})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orphans, nil
}

// articleFilesExist checks both layouts for a surviving body file.
func articleFilesExist(sectionDir, name string) bool {
	if _, err := os.Stat(filepath.Join(sectionDir, name+bodyExt)); err == nil {
		return true
	}
	entries, err := os.ReadDir(sectionDir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.IsDir() && domain.IsLocale(entry.Name()) {
			if _, err := os.Stat(filepath.Join(sectionDir, entry.Name(), name+bodyExt)); err == nil {
				return true
			}
		}
	}
	return false
}

func readSidecar(path string) (*domain.Identity, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var file sidecarFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sidecar %s: %w", path, err)
	}
	return &domain.Identity{
		RemoteID:       file.RemoteID,
		Hashes:         file.Hashes,
		TranslationIDs: file.TranslationIDs,
		Meta:           file.Meta,
	}, nil
}

func writeSidecar(path string, id *domain.Identity) error {
	file := sidecarFile{
		RemoteID:       id.RemoteID,
		Hashes:         id.Hashes,
		TranslationIDs: id.TranslationIDs,
		Meta:           id.Meta,
	}
	data, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
