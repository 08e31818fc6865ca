package treetranslation

import (
	"context"
	"errors"
	"time"
)

// TreeTranslation is the language specific part of a menu tree node.
type TreeTranslation struct {
	ID        int64     `json:"id"`
	TreeID    int64     `json:"treeId"`
	Language  string    `json:"language"`
	Name      string    `json:"name"`
	Title     string    `json:"title,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists tree translations.
//
// FindOne reports found == false, with a nil error, if no record has the
// given id. A non nil error means the store itself failed.
type Store interface {
	FindOne(ctx context.Context, id int64) (t TreeTranslation, found bool, err error)
	Save(ctx context.Context, t TreeTranslation) (TreeTranslation, error)
	Delete(ctx context.Context, t TreeTranslation) error
	HealthCheck() error
}

// NewStore creates a store using the provider registered as driverName.
func NewStore(driverName, dataSourceName string, options ...StoreOption) (Store, error) {
	p, found := getProvider(driverName)
	if !found {
		return nil, errors.New("No treetranslation provider for type: " + driverName)
	}
	return p(dataSourceName, options...)
}
