package dataset

import (
	"context"
	"fmt"
	"sync"

	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

// Source supplies the raw rows for a dataset family.
type Source interface {
	FetchRows(ctx context.Context, family Family) ([]Row, error)
}

// Store memoizes one row set per dataset family. Each family is fetched at most
// once for the process lifetime: concurrent first-time loads share the single
// in-flight fetch, and the cache is never invalidated. Loaded rows are read-only;
// aggregation never mutates them.
type Store struct {
	source  Source
	entries map[Family]*storeEntry
}

type storeEntry struct {
	once sync.Once
	rows []Row
	err  error
}

func NewStore(source Source) *Store {
	entries := make(map[Family]*storeEntry, len(Families()))
	for _, family := range Families() {
		entries[family] = &storeEntry{}
	}

	return &Store{source: source, entries: entries}
}

func (store *Store) Load(ctx context.Context, family Family) ([]Row, error) {
	entry, ok := store.entries[family]
	if !ok {
		return nil, fmt.Errorf("unrecognized dataset family '%v'", family)
	}

	entry.once.Do(func() {
		entry.rows, entry.err = store.source.FetchRows(ctx, family)
		if entry.err == nil {
			log.Infof("loaded %d rows for %v dataset", len(entry.rows), family)
		}
	})

	if entry.err != nil {
		return nil, wrap.Errorf(entry.err, "failed to load %v dataset", family)
	}

	return entry.rows, nil
}
