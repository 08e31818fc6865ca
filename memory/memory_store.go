package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	treetranslation "github.com/snabble/go-treetranslation"
)

var DriverName = "memory"

func init() {
	treetranslation.RegisterProvider(DriverName, NewMemoryStore)
}

type MemoryStore struct {
	mutex sync.RWMutex

	storage map[int64]treetranslation.TreeTranslation
	guards  []treetranslation.DeleteGuard
}

func NewMemoryStore(dataSourceName string, options ...treetranslation.StoreOption) (treetranslation.Store, error) {
	return New(options...), nil
}

// New returns an empty store. DeleteGuard options are evaluated in order
// on every delete.
func New(options ...treetranslation.StoreOption) *MemoryStore {
	store := &MemoryStore{storage: map[int64]treetranslation.TreeTranslation{}}
	for _, option := range options {
		if guard, ok := option.(treetranslation.DeleteGuard); ok {
			store.guards = append(store.guards, guard)
		}
	}
	return store
}

func (store *MemoryStore) FindOne(ctx context.Context, id int64) (treetranslation.TreeTranslation, bool, error) {
	store.mutex.RLock()
	defer store.mutex.RUnlock()

	t, ok := store.storage[id]
	return t, ok, nil
}

func (store *MemoryStore) Save(ctx context.Context, t treetranslation.TreeTranslation) (treetranslation.TreeTranslation, error) {
	if t.ID <= 0 {
		return t, errors.New("id must be positive")
	}

	store.mutex.Lock()
	defer store.mutex.Unlock()

	t.UpdatedAt = time.Now().UTC()
	store.storage[t.ID] = t
	return t, nil
}

func (store *MemoryStore) Delete(ctx context.Context, t treetranslation.TreeTranslation) error {
	store.mutex.Lock()
	defer store.mutex.Unlock()

	for _, guard := range store.guards {
		if err := guard(t); err != nil {
			return err
		}
	}

	delete(store.storage, t.ID)
	return nil
}

func (store *MemoryStore) HealthCheck() error {
	return nil
}
