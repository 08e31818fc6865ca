package http

import (
	logging "github.com/snabble/go-logging/v2"

	treetranslation "github.com/snabble/go-treetranslation"
)

func deleteModel(store Store, flashes FlashStore, previous PreviousURL, cfg config) func(w Response, r Request) {
	return func(w Response, r Request) {
		ctx := r.OriginalRequest.Context()

		t, err := findModel(ctx, store, r.ID)
		if err != nil {
			w.SendError(err)
			return
		}

		err = store.Delete(ctx, t)
		if err != nil {
			logging.Log.WithError(err).WithField("id", r.ID).Warn("could not delete tree translation")

			if err := flashes.AddFlash(w.Writer, r.OriginalRequest, cfg.flashCategory, treetranslation.Message(err)); err != nil {
				w.SendError(InternalError("add flash: %v", err))
				return
			}
			w.Redirect(previous.Previous(r.OriginalRequest))
			return
		}

		logging.Log.WithField("id", r.ID).Info("deleted tree translation")
		// TODO: reload the form via AJAX instead of leaving the page
		w.Redirect(cfg.redirectAfterDelete)
	}
}
