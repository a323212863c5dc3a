package collectors

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/yair/eventscout/pkg/domain"
)

// memoryKV is an in-process KeyValueStore with injectable failures.
type memoryKV struct {
	mu     sync.Mutex
	data   map[string]string
	writes int
	getErr error
	setErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.writes++
	m.data[key] = value
	return nil
}

func (m *memoryKV) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

func setupTestRepository(t *testing.T) *FavoritesRepository {
	db, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	kv, err := NewSQLiteKV(db)
	if err != nil {
		t.Fatalf("failed to create kv store: %v", err)
	}
	repo, err := NewFavoritesRepository(kv, nil)
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	return repo
}

func TestNewFavoritesRepository(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		_, err := NewFavoritesRepository(nil, nil)
		if err == nil {
			t.Fatal("expected error for nil store")
		}
	})
}

func TestFavoritesRepository_Scenario(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()
	e1 := domain.Event{ID: "E1", Name: "Jazz Night", StartDate: "2026-11-02"}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty favorites, got %d", len(all))
	}

	added, err := repo.Add(ctx, e1)
	if err != nil || !added {
		t.Fatalf("expected add to succeed, got added=%v err=%v", added, err)
	}
	all, _ = repo.GetAll(ctx)
	if len(all) != 1 || all[0].ID != "E1" || all[0].Name != "Jazz Night" {
		t.Fatalf("expected [E1], got %+v", all)
	}

	added, err = repo.Add(ctx, e1)
	if err != nil {
		t.Fatalf("expected no error on duplicate add, got %v", err)
	}
	if added {
		t.Error("expected duplicate add to report no change")
	}
	all, _ = repo.GetAll(ctx)
	if len(all) != 1 {
		t.Fatalf("expected exactly one E1, got %d entries", len(all))
	}

	if err := repo.Remove(ctx, "E1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	all, _ = repo.GetAll(ctx)
	if len(all) != 0 {
		t.Fatalf("expected [], got %+v", all)
	}
}

func TestFavoritesRepository_Contains(t *testing.T) {
	repo := setupTestRepository(t)
	ctx := context.Background()

	repo.Add(ctx, domain.Event{ID: "E1"})

	if ok, err := repo.Contains(ctx, "E1"); err != nil || !ok {
		t.Errorf("expected E1 to be contained, got %v %v", ok, err)
	}
	if ok, err := repo.Contains(ctx, "E2"); err != nil || ok {
		t.Errorf("expected E2 to be absent, got %v %v", ok, err)
	}
}

func TestFavoritesRepository_RemoveAbsent(t *testing.T) {
	kv := newMemoryKV()
	repo, _ := NewFavoritesRepository(kv, nil)
	ctx := context.Background()

	repo.Add(ctx, domain.Event{ID: "E1"})
	repo.Add(ctx, domain.Event{ID: "E2"})
	before, _ := repo.GetAll(ctx)
	writes := kv.writeCount()

	if err := repo.Remove(ctx, "E9"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	after, _ := repo.GetAll(ctx)
	if len(after) != len(before) {
		t.Fatalf("expected size %d, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID {
			t.Errorf("expected order preserved, got %+v", after)
		}
	}
	if kv.writeCount() != writes+1 {
		t.Errorf("expected remove to rewrite the snapshot, writes %d -> %d", writes, kv.writeCount())
	}
}

func TestFavoritesRepository_DuplicateAddDoesNotWrite(t *testing.T) {
	kv := newMemoryKV()
	repo, _ := NewFavoritesRepository(kv, nil)
	ctx := context.Background()

	repo.Add(ctx, domain.Event{ID: "E1"})
	writes := kv.writeCount()
	repo.Add(ctx, domain.Event{ID: "E1", Name: "changed"})

	if kv.writeCount() != writes {
		t.Errorf("expected no write for duplicate add")
	}
}

func TestFavoritesRepository_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("read failure is a StorageError", func(t *testing.T) {
		kv := newMemoryKV()
		kv.getErr = errors.New("io error")
		repo, _ := NewFavoritesRepository(kv, nil)

		_, err := repo.Contains(ctx, "E1")
		var storageErr *domain.StorageError
		if !errors.As(err, &storageErr) {
			t.Fatalf("expected StorageError, got %v", err)
		}
		if storageErr.Op != "read" || storageErr.Key != FavoritesKey {
			t.Errorf("unexpected storage error %+v", storageErr)
		}
	})

	t.Run("corrupt snapshot", func(t *testing.T) {
		kv := newMemoryKV()
		kv.data[FavoritesKey] = "{not a list"
		repo, _ := NewFavoritesRepository(kv, nil)

		_, err := repo.GetAll(ctx)
		var storageErr *domain.StorageError
		if !errors.As(err, &storageErr) || storageErr.Op != "decode" {
			t.Fatalf("expected decode StorageError, got %v", err)
		}
	})

	t.Run("write failure", func(t *testing.T) {
		kv := newMemoryKV()
		kv.setErr = errors.New("read-only")
		repo, _ := NewFavoritesRepository(kv, nil)

		added, err := repo.Add(ctx, domain.Event{ID: "E1"})
		if added {
			t.Error("expected add to fail")
		}
		var storageErr *domain.StorageError
		if !errors.As(err, &storageErr) || storageErr.Op != "write" {
			t.Fatalf("expected write StorageError, got %v", err)
		}
	})

	t.Run("event without id", func(t *testing.T) {
		repo, _ := NewFavoritesRepository(newMemoryKV(), nil)
		if _, err := repo.Add(ctx, domain.Event{Name: "nameless"}); err != domain.ErrInvalidRequest {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("null snapshot reads as empty", func(t *testing.T) {
		kv := newMemoryKV()
		kv.data[FavoritesKey] = "null"
		repo, _ := NewFavoritesRepository(kv, nil)

		all, err := repo.GetAll(ctx)
		if err != nil || all == nil || len(all) != 0 {
			t.Errorf("expected empty slice, got %v %v", all, err)
		}
	})
}
