// Package service orchestrates domain operations: validation, attribute
// resolution, aggregate assembly and token flows. It is the only layer that
// maps store sentinels to the coded error taxonomy.
package service

import (
	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/store"
)

// mapStoreErr converts store sentinels into coded errors. what names the
// entity for the client-facing message ("recipe", "tag", ...).
func mapStoreErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case domainerrors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(what + " not found")
	case domainerrors.Is(err, store.ErrAlreadyExists):
		return domainerrors.AlreadyExists(what + " already exists")
	default:
		return domainerrors.Wrap(err, "storage failure")
	}
}
