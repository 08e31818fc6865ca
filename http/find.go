package http

import (
	"context"

	treetranslation "github.com/snabble/go-treetranslation"
)

const notFoundMessage = "The requested page does not exist."

// findModel returns the tree translation with the id or a 404 error.
func findModel(ctx context.Context, store Store, id int64) (treetranslation.TreeTranslation, error) {
	t, found, err := store.FindOne(ctx, id)
	if err != nil {
		return treetranslation.TreeTranslation{}, InternalError("find tree translation %d: %v", id, err)
	}
	if !found {
		return treetranslation.TreeTranslation{}, NotFoundError(notFoundMessage)
	}
	return t, nil
}
