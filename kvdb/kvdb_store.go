package kvdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/trace"

	treetranslation "github.com/snabble/go-treetranslation"
)

var DriverName = "kvdb"

const defaultBucket = "tree_translation"

func init() {
	treetranslation.RegisterProvider(DriverName, NewKVStore)
}

// KVStore keeps tree translations as JSON values in a bolt bucket, keyed by
// the big endian id.
type KVStore struct {
	db     *bolt.DB
	bucket []byte
	owned  bool
}

func NewKVStore(dataSourceName string, options ...treetranslation.StoreOption) (treetranslation.Store, error) {
	db, err := bolt.Open(dataSourceName, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	store, err := New(db, options...)
	if err != nil {
		db.Close()
		return nil, err
	}
	store.owned = true
	return store, nil
}

// New uses db, creating the bucket if it does not exist. The bucket name
// can be changed with a treetranslation.Index option.
func New(db *bolt.DB, options ...treetranslation.StoreOption) (*KVStore, error) {
	bucket := defaultBucket
	for _, option := range options {
		if index, ok := option.(treetranslation.Index); ok {
			bucket = string(index)
		}
	}
	return &KVStore{db: db, bucket: []byte(bucket)}, db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
}

func key(id int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(id))
	return k
}

func (s *KVStore) FindOne(ctx context.Context, id int64) (treetranslation.TreeTranslation, bool, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "FindOne")
	defer span.End()

	var (
		t     treetranslation.TreeTranslation
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		res := tx.Bucket(s.bucket).Get(key(id))
		if res == nil {
			return nil
		}
		found = true
		return json.Unmarshal(res, &t)
	})
	if err != nil {
		span.RecordError(err)
		return treetranslation.TreeTranslation{}, false, err
	}
	if !found {
		span.AddEvent("not found")
	}
	return t, found, nil
}

func (s *KVStore) Save(ctx context.Context, t treetranslation.TreeTranslation) (treetranslation.TreeTranslation, error) {
	var span trace.Span
	_, span = tracer.Start(ctx, "Save")
	defer span.End()

	if t.ID <= 0 {
		err := errors.New("id must be positive")
		span.RecordError(err)
		return t, err
	}
	t.UpdatedAt = time.Now().UTC()

	j, err := json.Marshal(t)
	if err != nil {
		return t, err
	}

	span.AddEvent("Update bucket")
	return t, s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(key(t.ID), j)
	})
}

func (s *KVStore) Delete(ctx context.Context, t treetranslation.TreeTranslation) error {
	var span trace.Span
	_, span = tracer.Start(ctx, "Delete")
	defer span.End()

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(key(t.ID))
	})
	if err != nil {
		span.RecordError(err)
		return &treetranslation.DeleteError{ID: t.ID, Err: err}
	}
	return nil
}

func (s *KVStore) HealthCheck() error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(s.bucket) == nil {
			return errors.New("bucket missing: " + string(s.bucket))
		}
		return nil
	})
}

// Close closes the database if the store opened it.
func (s *KVStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
