package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/beemsaisuoy/my-salon-app/api/middleware"
	"github.com/beemsaisuoy/my-salon-app/pkg/enums"
	pkgerrors "github.com/beemsaisuoy/my-salon-app/pkg/errors"
)

// caller is the authenticated identity seeded by the auth middleware.
type caller struct {
	UserID uuid.UUID
	Name   string
	Role   enums.UserRole
}

func currentCaller(r *http.Request) (caller, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return caller{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return caller{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return caller{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid role")
	}
	return caller{
		UserID: userID,
		Name:   middleware.UserNameFromContext(r.Context()),
		Role:   role,
	}, nil
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chiURLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id in path").WithDetails(map[string]any{"param": param})
	}
	return id, nil
}
