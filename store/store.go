// Package store persists named hex mesh snapshots in a badger key-value
// store so repair passes can be inspected and resumed.
package store

import (
	"bytes"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/meshio"
)

// ErrNotFound is returned by Get for names with no stored mesh.
var ErrNotFound = errors.New("store: mesh not found")

var meshPrefix = []byte("mesh/")

// Store maps names to meshes. Meshes are stored in the meshio text encoding.
type Store struct {
	db *badger.DB
}

// Open opens the store in dir, creating it if needed. An empty dir opens
// a store that lives in memory until Close.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.MetricsEnabled = false
	if dir == "" {
		opts.InMemory = true
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "store: opening %q", dir)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Put stores m under name, replacing any previous mesh.
func (s *Store) Put(name string, m *hexmesh.Mesh) error {
	var buf bytes.Buffer
	if err := meshio.Write(&buf, m); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(meshKey(name), buf.Bytes())
	})
}

// Get returns a copy of the mesh stored under name. Deleted vertices of the
// original are not stored, so indices match the original after Compact.
func (s *Store) Get(name string) (*hexmesh.Mesh, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(meshKey(name))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, errors.Wrap(ErrNotFound, name)
	} else if err != nil {
		return nil, err
	}
	return meshio.Parse(name, bytes.NewReader(val))
}

// Delete removes the mesh stored under name. Deleting a missing name is
// not an error.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(meshKey(name))
	})
}

// Names returns the stored mesh names in lexical order.
func (s *Store) Names() ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         meshPrefix,
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, string(it.Item().Key()[len(meshPrefix):]))
		}
		return nil
	})
	return names, err
}

func meshKey(name string) []byte {
	return append(append([]byte(nil), meshPrefix...), name...)
}
