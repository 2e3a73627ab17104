package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/Rehan-4778/JobHunt-BE/api/responses"
	"github.com/Rehan-4778/JobHunt-BE/api/validators"
	"github.com/Rehan-4778/JobHunt-BE/internal/users"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/Rehan-4778/JobHunt-BE/pkg/pagination"
	"github.com/Rehan-4778/JobHunt-BE/pkg/types"
)

type roleLister interface {
	ListByRole(ctx context.Context, role enums.Role, search string, p pagination.Params) ([]models.User, int64, error)
}

// ListByRole lets admins browse accounts of one role with an optional
// name/email search.
func ListByRole(repo roleLister, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if repo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users repository unavailable"))
			return
		}

		raw, err := validators.ParseTokenParam(r, "role")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		role, err := enums.ParseRole(raw)
		if err != nil || role == enums.RoleAdmin {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "role must be user or employer"))
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, total, err := repo.ListByRole(r.Context(), role, strings.TrimSpace(r.URL.Query().Get("search")), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users"))
			return
		}

		dtos := make([]*users.UserDTO, 0, len(rows))
		for i := range rows {
			dtos = append(dtos, users.FromModel(&rows[i]))
		}
		responses.WriteSuccess(w, struct {
			Items []*users.UserDTO `json:"items"`
			Meta  types.PageMeta   `json:"meta"`
		}{Items: dtos, Meta: page.MetaFor(total)})
	}
}
