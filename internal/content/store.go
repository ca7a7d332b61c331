package content

import (
	"sync/atomic"
)

// Store holds the document currently being served. Readers always see a
// complete, validated document; a reload swaps it atomically.
type Store struct {
	path string
	doc  atomic.Pointer[Document]
}

// NewStore loads the document at path, or the embedded default when path
// is empty.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// StoreOf wraps an already loaded document. Reload on such a store is a
// no-op returning nil.
func StoreOf(doc *Document) *Store {
	s := &Store{}
	s.doc.Store(doc)
	return s
}

// Path is the file backing the store, empty for the embedded document.
func (s *Store) Path() string {
	return s.path
}

// Current returns the active document.
func (s *Store) Current() *Document {
	return s.doc.Load()
}

// Reload re-reads the backing file. On failure the previous document
// stays active.
func (s *Store) Reload() error {
	var (
		doc *Document
		err error
	)
	switch {
	case s.path != "":
		doc, err = Load(s.path)
	case s.doc.Load() == nil:
		doc, err = Default()
	default:
		return nil
	}
	if err != nil {
		return err
	}
	s.doc.Store(doc)
	return nil
}
