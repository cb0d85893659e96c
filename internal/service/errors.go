package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/hourbook/internal/auth"
	"github.com/mmynk/hourbook/internal/models"
	"github.com/mmynk/hourbook/internal/recordstore"
	"github.com/mmynk/hourbook/pkg/api"
)

// toConnectError maps record store and credential errors onto Connect codes.
func toConnectError(err error) *connect.Error {
	var schemaErr *recordstore.SchemaError
	switch {
	case errors.Is(err, recordstore.ErrEmptyName),
		errors.Is(err, recordstore.ErrNothingToAdd),
		errors.Is(err, auth.ErrWeakPassword),
		errors.As(err, &schemaErr):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, recordstore.ErrDuplicate):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, recordstore.ErrImportNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrIncorrectPassword):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, auth.ErrNotConfigured),
		errors.Is(err, recordstore.ErrNoCredentials),
		errors.Is(err, recordstore.ErrNoMirror):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func toAPIEntries(entries []models.Entry) []api.Entry {
	out := make([]api.Entry, len(entries))
	for i, e := range entries {
		out[i] = api.Entry(e)
	}
	return out
}

func fromAPIEntry(e api.Entry) models.Entry {
	return models.Entry(e)
}
