package dataset_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tomnetutc/tmd-sub000/dataset"
)

type fakeSource struct {
	fetchCount atomic.Int64
	rows       []dataset.Row
	err        error
}

func (source *fakeSource) FetchRows(
	ctx context.Context,
	family dataset.Family,
) ([]dataset.Row, error) {
	source.fetchCount.Add(1)
	return source.rows, source.err
}

func TestStoreFetchesEachFamilyOnce(t *testing.T) {
	source := &fakeSource{rows: []dataset.Row{{"year": "2021"}}}
	store := dataset.NewStore(source)

	for i := 0; i < 3; i++ {
		rows, err := store.Load(context.Background(), dataset.FamilyTrips)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
	}

	if count := source.fetchCount.Load(); count != 1 {
		t.Errorf("expected a single fetch for repeated loads, got %d", count)
	}
}

func TestStoreConcurrentLoadsShareOneFetch(t *testing.T) {
	source := &fakeSource{rows: []dataset.Row{{"year": "2021"}}}
	store := dataset.NewStore(source)

	var waitGroup sync.WaitGroup
	for i := 0; i < 16; i++ {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			if _, err := store.Load(context.Background(), dataset.FamilyTimeUse); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	waitGroup.Wait()

	if count := source.fetchCount.Load(); count != 1 {
		t.Errorf("expected concurrent loads to share one fetch, got %d", count)
	}
}

func TestStoreCachesPerFamily(t *testing.T) {
	source := &fakeSource{rows: []dataset.Row{{"year": "2021"}}}
	store := dataset.NewStore(source)

	for _, family := range dataset.Families() {
		if _, err := store.Load(context.Background(), family); err != nil {
			t.Fatalf("unexpected error for %v: %v", family, err)
		}
	}

	if count := source.fetchCount.Load(); count != int64(len(dataset.Families())) {
		t.Errorf("expected one fetch per family, got %d", count)
	}
}

func TestStoreKeepsFetchErrors(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}
	store := dataset.NewStore(source)

	for i := 0; i < 2; i++ {
		if _, err := store.Load(context.Background(), dataset.FamilyTravel); err == nil {
			t.Fatal("expected error from failing source")
		}
	}

	// A failed fetch is memoized like a successful one.
	if count := source.fetchCount.Load(); count != 1 {
		t.Errorf("expected failed fetch not to be retried, got %d fetches", count)
	}
}

func TestStoreRejectsUnrecognizedFamily(t *testing.T) {
	store := dataset.NewStore(&fakeSource{})

	if _, err := store.Load(context.Background(), dataset.Family(99)); err == nil {
		t.Error("expected error for unrecognized family")
	}
}
