package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor is the authenticated principal performing a request.
type Actor struct {
	ID   uuid.UUID
	Role enums.Role
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdmin
}

// Guard resolves a resource and enforces ownership and role policy on it.
// Existence is always checked before permission, so a caller probing with a
// random id learns "not found" rather than "forbidden".
type Guard[T any] struct {
	// Resource names the guarded entity in error messages ("job",
	// "application", ...).
	Resource string

	// Fetch loads the resource by id. A gorm.ErrRecordNotFound result maps
	// to a NotFound error.
	Fetch func(ctx context.Context, id uuid.UUID) (T, error)

	// OwnerOf extracts the owning user id. Nil skips the ownership check.
	OwnerOf func(resource T) uuid.UUID

	// AllowedRoles restricts which roles may pass at all. Empty permits any
	// authenticated actor.
	AllowedRoles []enums.Role

	// AdminOverride lets admins through the ownership and role checks.
	AdminOverride bool
}

// Resolve fetches the resource and runs the policy checks, returning the
// resource on success.
func (g Guard[T]) Resolve(ctx context.Context, actor Actor, id uuid.UUID) (T, error) {
	var zero T
	if g.Fetch == nil {
		return zero, pkgerrors.New(pkgerrors.CodeInternal, "guard has no fetch function")
	}

	resource, err := g.Fetch(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s not found", g.resourceName()))
		}
		return zero, pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("fetch %s", g.resourceName()))
	}

	if g.AdminOverride && actor.IsAdmin() {
		return resource, nil
	}

	if len(g.AllowedRoles) > 0 && !roleAllowed(actor.Role, g.AllowedRoles) {
		return zero, pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("not authorized to access this %s", g.resourceName()))
	}

	if g.OwnerOf != nil && g.OwnerOf(resource) != actor.ID {
		return zero, pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("not authorized to access this %s", g.resourceName()))
	}

	return resource, nil
}

func (g Guard[T]) resourceName() string {
	if g.Resource == "" {
		return "resource"
	}
	return g.Resource
}

func roleAllowed(role enums.Role, allowed []enums.Role) bool {
	for _, candidate := range allowed {
		if role == candidate {
			return true
		}
	}
	return false
}
