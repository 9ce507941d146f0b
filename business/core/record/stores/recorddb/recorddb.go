// Package recorddb contains record related CRUD functionality backed by
// LevelDB.
package recorddb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/ormond/healthchain/business/core/record"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

// Store manages the set of APIs for record database access.
type Store struct {
	log *zap.SugaredLogger
	mu  sync.Mutex
	db  *leveldb.DB
}

// Open constructs the api for data access using the LevelDB files found
// at the specified path. The directory is created if it doesn't exist.
func Open(log *zap.SugaredLogger, path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb: path[%s]: %w", path, err)
	}

	log.Infow("recorddb", "status", "opened", "path", path)

	return &Store{log: log, db: db}, nil
}

// NewMemory constructs the api for data access using an in memory LevelDB.
// Nothing survives a restart.
func NewMemory(log *zap.SugaredLogger) (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb: memory: %w", err)
	}

	log.Infow("recorddb", "status", "opened", "path", "memory")

	return &Store{log: log, db: db}, nil
}

// Close releases the database files.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new record into the database. A record with the same
// type and id must not already exist.
func (s *Store) Create(ctx context.Context, r record.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	k := key(r.Type, r.ID)

	// The existence check and the write must happen together.
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.db.Has(k, nil)
	if err != nil {
		return fmt.Errorf("has: key[%s]: %w", k, err)
	}

	if exists {
		return fmt.Errorf("%w: %s %s", record.ErrDuplicate, r.Type, r.ID)
	}

	if err := s.db.Put(k, data, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("put: key[%s]: %w", k, err)
	}

	return nil
}

// QueryByType returns every record of the specified type in the order they
// were created.
func (s *Store) QueryByType(ctx context.Context, et record.EntityType) ([]record.Record, error) {
	iter := s.db.NewIterator(util.BytesPrefix(prefix(et)), nil)
	defer iter.Release()

	var recs []record.Record
	for iter.Next() {
		var r record.Record
		if err := json.Unmarshal(iter.Value(), &r); err != nil {
			return nil, fmt.Errorf("unmarshal: key[%s]: %w", iter.Key(), err)
		}
		recs = append(recs, r)
	}

	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate: type[%s]: %w", et, err)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].DateCreated.Before(recs[j].DateCreated)
	})

	return recs, nil
}

// =============================================================================

// prefix returns the key prefix shared by every record of a type.
func prefix(et record.EntityType) []byte {
	return []byte(string(et) + "_")
}

// key forms the database key for a record.
func key(et record.EntityType, id string) []byte {
	return append(prefix(et), id...)
}
