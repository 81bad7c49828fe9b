package vegamdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/LuciAkirami/vegamdb/core"
	"github.com/LuciAkirami/vegamdb/index"
	"github.com/LuciAkirami/vegamdb/index/annoy"
	"github.com/LuciAkirami/vegamdb/index/flat"
	"github.com/LuciAkirami/vegamdb/index/ivf"
	"github.com/LuciAkirami/vegamdb/vectorstore"
)

// registry maps a persisted index name to a constructor for an untrained
// index of that type, sized for dim. Unknown names (and a missing entry)
// fall back to Flat, mirroring the façade's documented load behavior.
var registry = index.Registry{
	"FlatIndex": func(dim int) index.Index { return flat.New() },
	"IVFIndex": func(dim int) index.Index {
		return ivf.New(ivf.Options{Dimension: dim, DefaultNProbe: 1})
	},
	"AnnoyIndex": func(dim int) index.Index {
		return annoy.New(annoy.Options{Dimension: dim, DefaultSearchK: -1})
	},
}

// DB is the database façade: it glues a vector store to the currently
// selected index and orchestrates persistence.
type DB struct {
	store *vectorstore.Store
	index index.Index
	opts  options
}

// New returns an empty database with no index installed.
func New(optFns ...Option) *DB {
	return &DB{
		store: vectorstore.New(),
		opts:  applyOptions(optFns),
	}
}

// AddVector appends vec to the store.
func (db *DB) AddVector(vec []float32) (core.LocalID, error) {
	id, err := db.store.Append(vec)
	db.opts.logger.LogAppend(context.Background(), 1, db.store.Dimension(), err)
	if err != nil {
		return 0, translateError(err)
	}
	return id, nil
}

// AddVectorBulk appends n vectors of dimension dim from a contiguous
// row-major buffer.
func (db *DB) AddVectorBulk(buf []float32, n, dim int) error {
	err := db.store.AppendBulk(buf, n, dim)
	db.opts.logger.LogAppend(context.Background(), n, dim, err)
	return translateError(err)
}

// Size returns the number of stored vectors.
func (db *DB) Size() int { return db.store.Len() }

// Dimension returns the store's established vector dimension, or 0 if
// nothing has been appended yet.
func (db *DB) Dimension() int { return db.store.Dimension() }

// SetIndex installs idx as the current index, replacing any existing one.
// The new index is not built; the next Search (or an explicit BuildIndex)
// builds it.
func (db *DB) SetIndex(idx index.Index) { db.index = idx }

// Index returns the currently installed index, or nil if none has been
// set.
func (db *DB) Index() index.Index { return db.index }

// BuildIndex builds the current index from the full store. It panics if
// no index has been installed; callers that want the façade to choose an
// index should go through Search instead.
func (db *DB) BuildIndex() error {
	err := db.index.Build(db.store.All(), db.store.Len(), db.store.Dimension())
	db.opts.logger.LogBuild(context.Background(), db.index.Name(), db.store.Len(), err)
	return translateError(err)
}

// Search returns up to k nearest neighbors of query.
//
// If no index is set, a flat.Flat index is installed and built. If the
// current index is set but not yet trained, it is built before
// searching. Training is not guaranteed to succeed: k-means on the IVF
// index leaves it untrained when K > N. If the index is still untrained
// after the build attempt, Search falls back to an exact scan for this
// query only, without replacing the installed index. Index() and
// IsTrained() keep reporting the real, untrained state.
func (db *DB) Search(query []float32, k int, params index.SearchParams) ([]index.SearchResult, error) {
	if db.index == nil {
		db.SetIndex(flat.New())
		if err := db.BuildIndex(); err != nil {
			return nil, err
		}
	} else if !db.index.IsTrained() {
		if err := db.BuildIndex(); err != nil {
			return nil, err
		}
	}

	searchIndex := db.index
	if !searchIndex.IsTrained() {
		searchIndex = flat.New()
	}

	results, err := searchIndex.Search(db.store.All(), query, k, params)
	db.opts.logger.LogSearch(context.Background(), db.index.Name(), k, len(results), err)
	if err != nil {
		return nil, translateError(err)
	}
	return results, nil
}

// Save writes the store, then, if an index is set, a length-prefixed
// index name followed by the index's own save payload. If no index is
// set, the trailer is omitted entirely.
func (db *DB) Save(w io.Writer) error {
	if err := db.store.Save(w); err != nil {
		db.opts.logger.LogSave(context.Background(), db.store.Len(), err)
		return translateError(err)
	}

	if db.index != nil {
		name := db.index.Name()
		if err := binary.Write(w, binary.LittleEndian, int32(len(name))); err != nil {
			return fmt.Errorf("vegamdb: write index name length: %w", err)
		}
		if _, err := w.Write([]byte(name)); err != nil {
			return fmt.Errorf("vegamdb: write index name: %w", err)
		}
		if err := db.index.Save(w); err != nil {
			return translateError(err)
		}
	}

	db.opts.logger.LogSave(context.Background(), db.store.Len(), nil)
	return nil
}

// Load reads a store previously written by Save, then, if the stream
// carries a trailer, instantiates the matching index (Flat, IVF, or
// Annoy, each with placeholder parameters and the store's dimension) and
// loads its payload. Unknown index names fall back to Flat.
func (db *DB) Load(r io.Reader) error {
	db.store = vectorstore.New()
	if err := db.store.Load(r); err != nil {
		return translateError(err)
	}

	var nameLen int32
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		if err == io.EOF {
			db.index = nil
			db.opts.logger.LogLoad(context.Background(), db.store.Len(), "", nil)
			return nil
		}
		return fmt.Errorf("vegamdb: read index name length: %w", err)
	}
	if nameLen <= 0 {
		db.index = nil
		db.opts.logger.LogLoad(context.Background(), db.store.Len(), "", nil)
		return nil
	}

	nameBytes := make([]byte, nameLen)
	if _, err := io.ReadFull(r, nameBytes); err != nil {
		return fmt.Errorf("vegamdb: read index name: %w", err)
	}
	name := string(nameBytes)

	idx := registry.New(name, db.store.Dimension())
	if err := idx.Load(r, db.store.Dimension()); err != nil {
		return translateError(err)
	}
	db.index = idx

	db.opts.logger.LogLoad(context.Background(), db.store.Len(), name, nil)
	return nil
}
