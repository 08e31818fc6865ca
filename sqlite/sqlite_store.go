package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel/codes"

	treetranslation "github.com/snabble/go-treetranslation"
)

var DriverName = "sqlite"

//go:embed schema.sql
var schema string

var columns = []string{"id", "tree_id", "language", "name", "title", "updated_at"}

func init() {
	treetranslation.RegisterProvider(DriverName, NewSQLiteStore)
}

type SQLiteStore struct {
	db *sql.DB
	sq sq.StatementBuilderType
}

func NewSQLiteStore(dataSourceName string, options ...treetranslation.StoreOption) (treetranslation.Store, error) {
	return Open(dataSourceName)
}

// Open opens the database file at path, creating it and the schema if
// needed. Foreign keys are enforced on every connection.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("make db dir: %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db, sq: sq.StatementBuilder}, nil
}

func (store *SQLiteStore) FindOne(ctx context.Context, id int64) (treetranslation.TreeTranslation, bool, error) {
	ctx, span := tracer.Start(ctx, "FindOne")
	defer span.End()

	sqlStr, args, err := store.sq.Select(columns...).
		From("tree_translation").
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return treetranslation.TreeTranslation{}, false, err
	}

	var (
		t       treetranslation.TreeTranslation
		updated string
	)
	err = store.db.QueryRowContext(ctx, sqlStr, args...).
		Scan(&t.ID, &t.TreeID, &t.Language, &t.Name, &t.Title, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		span.AddEvent("not found")
		return treetranslation.TreeTranslation{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return treetranslation.TreeTranslation{}, false, fmt.Errorf("select tree translation %d: %w", id, err)
	}
	t.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)

	return t, true, nil
}

func (store *SQLiteStore) Save(ctx context.Context, t treetranslation.TreeTranslation) (treetranslation.TreeTranslation, error) {
	ctx, span := tracer.Start(ctx, "Save")
	defer span.End()

	if t.ID <= 0 {
		return t, errors.New("id must be positive")
	}
	t.UpdatedAt = time.Now().UTC()

	sqlStr, args, err := store.sq.Insert("tree_translation").
		Columns(columns...).
		Values(t.ID, t.TreeID, t.Language, t.Name, t.Title, t.UpdatedAt.Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(id) DO UPDATE SET tree_id=excluded.tree_id, language=excluded.language, name=excluded.name, title=excluded.title, updated_at=excluded.updated_at").
		ToSql()
	if err != nil {
		return t, err
	}
	if _, err := store.db.ExecContext(ctx, sqlStr, args...); err != nil {
		span.RecordError(err)
		return t, fmt.Errorf("save tree translation %d: %w", t.ID, err)
	}
	return t, nil
}

// AddAlias registers a slug pointing to the translation. A translation with
// aliases cannot be deleted.
func (store *SQLiteStore) AddAlias(ctx context.Context, translationID int64, slug string) error {
	sqlStr, args, err := store.sq.Insert("tree_translation_alias").
		Columns("tree_translation_id", "slug").
		Values(translationID, slug).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := store.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("add alias %q: %w", slug, err)
	}
	return nil
}

func (store *SQLiteStore) Delete(ctx context.Context, t treetranslation.TreeTranslation) error {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()

	sqlStr, args, err := store.sq.Delete("tree_translation").
		Where(sq.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := store.db.ExecContext(ctx, sqlStr, args...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		deleteErr := &treetranslation.DeleteError{ID: t.ID, Err: err}
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			deleteErr.Detail = sqliteErr.Error()
		}
		return deleteErr
	}
	return nil
}

func (store *SQLiteStore) HealthCheck() error {
	return store.db.Ping()
}

func (store *SQLiteStore) Close() error {
	return store.db.Close()
}
