// Package service holds the application's use cases. Services validate input,
// call the store and the scripture provider, and return coded errors from
// internal/errors for the API layer to render.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/scripturesanctuary/sanctuary-server/internal/catalog"
	"github.com/scripturesanctuary/sanctuary-server/internal/domain"
	domainerrors "github.com/scripturesanctuary/sanctuary-server/internal/errors"
	"github.com/scripturesanctuary/sanctuary-server/internal/store"
	"github.com/scripturesanctuary/sanctuary-server/internal/validation"
)

// ScriptureNotFoundMessage is shown whenever a passage cannot be resolved.
const ScriptureNotFoundMessage = "Sorry, scripture not found."

// validate is the shared request validator.
var validate = validation.New()

// Resolver fetches the verses a reference names. *scripture.Client
// implements it.
type Resolver interface {
	Resolve(ctx context.Context, ref domain.Reference) ([]domain.Verse, error)
}

// validateReference checks ref against the catalog and converts failures
// into validation errors.
func validateReference(c *catalog.Catalog, ref domain.Reference) error {
	if err := c.ValidateReference(ref); err != nil {
		if errors.Is(err, domain.ErrInvalidReference) {
			return domainerrors.Validation(err.Error())
		}
		return err
	}
	return nil
}

// resolve fetches ref and turns every provider failure into a "scripture not
// found" error after logging it.
func resolve(ctx context.Context, r Resolver, logger *slog.Logger, ref domain.Reference) ([]domain.Verse, error) {
	verses, err := r.Resolve(ctx, ref)
	if err != nil {
		logger.Warn("scripture lookup failed",
			"translation", ref.Translation,
			"book", ref.Book,
			"chapter", ref.Chapter,
			"start", ref.Start(),
			"end", ref.End(),
			"error", err,
		)
		return nil, domainerrors.NotFound(ScriptureNotFoundMessage).WithCause(err)
	}
	return verses, nil
}

// storeError translates store sentinels into coded errors. what names the
// entity for messages.
func storeError(err error, what string) error {
	var se *store.Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		msg := what + " not found"
		if errors.As(err, &se) && se.Message != store.ErrNotFound.Message {
			msg = se.Message
		}
		return domainerrors.NotFound(msg).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		msg := what + " already exists"
		if errors.As(err, &se) && se.Message != store.ErrAlreadyExists.Message {
			msg = se.Message
		}
		return domainerrors.AlreadyExists(msg).WithCause(err)
	default:
		return err
	}
}
