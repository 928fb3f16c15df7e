package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/utrgv-dp/roadmap/pkg/errors"
	"github.com/utrgv-dp/roadmap/pkg/roadmap"
)

// FileStore keeps each collection as a JSON array file under a data
// directory, the local-development twin of the Mongo deployment.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a store over dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "creating data dir %q", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) load(collection string, v any) error {
	data, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeCollectionNotFound, "no collection %q", collection)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "reading collection %q", collection)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "decoding collection %q", collection)
	}
	return nil
}

func (s *FileStore) save(collection string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encoding collection %q", collection)
	}
	if err := os.WriteFile(s.path(collection), data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing collection %q", collection)
	}
	return nil
}

// Roadmaps returns all documents of a collection.
func (s *FileStore) Roadmaps(ctx context.Context, collection string) ([]roadmap.Roadmap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []roadmap.Roadmap
	if err := s.load(collection, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// UpdateCourse applies a field edit to the first document holding the
// titled course and rewrites the collection file.
func (s *FileStore) UpdateCourse(ctx context.Context, collection, courseTitle, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []roadmap.Roadmap
	if err := s.load(collection, &docs); err != nil {
		return err
	}

	for i := range docs {
		if docs[i].FindCourse(courseTitle) == nil {
			continue
		}
		if err := docs[i].ApplyEdit(courseTitle, field, value); err != nil {
			return err
		}
		return s.save(collection, docs)
	}
	return errors.New(errors.ErrCodeCourseNotFound,
		"no course titled %q in %q", courseTitle, collection)
}

// InsertRoadmaps appends documents, creating the collection if needed.
func (s *FileStore) InsertRoadmaps(ctx context.Context, collection string, docs []roadmap.Roadmap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing []roadmap.Roadmap
	if err := s.load(collection, &existing); err != nil &&
		!errors.Is(err, errors.ErrCodeCollectionNotFound) {
		return err
	}
	return s.save(collection, append(existing, docs...))
}

// Listings returns the catalog, or an empty list when none is seeded.
func (s *FileStore) Listings(ctx context.Context) ([]roadmap.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var listings []roadmap.Listing
	if err := s.load(ListingsCollection, &listings); err != nil {
		if errors.Is(err, errors.ErrCodeCollectionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return listings, nil
}

// ReplaceListings replaces the catalog wholesale.
func (s *FileStore) ReplaceListings(ctx context.Context, listings []roadmap.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ListingsCollection, listings)
}

// Collections lists the roadmap collection files (the listing excluded).
func (s *FileStore) Collections(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading data dir")
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		name = strings.TrimSuffix(name, ".json")
		if name != ListingsCollection {
			names = append(names, name)
		}
	}
	return names, nil
}

// Ping verifies the data directory is accessible.
func (s *FileStore) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.dir); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "data dir %q", s.dir)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
