package applications

import (
	"context"
	"net/http"
	"strings"

	"github.com/Rehan-4778/JobHunt-BE/api/middleware"
	"github.com/Rehan-4778/JobHunt-BE/api/responses"
	"github.com/Rehan-4778/JobHunt-BE/api/uploads"
	"github.com/Rehan-4778/JobHunt-BE/api/validators"
	"github.com/Rehan-4778/JobHunt-BE/internal/applications"
	"github.com/Rehan-4778/JobHunt-BE/pkg/config"
	"github.com/Rehan-4778/JobHunt-BE/pkg/db/models"
	"github.com/Rehan-4778/JobHunt-BE/pkg/enums"
	pkgerrors "github.com/Rehan-4778/JobHunt-BE/pkg/errors"
	"github.com/Rehan-4778/JobHunt-BE/pkg/logger"
	"github.com/google/uuid"
)

type profileFetcher interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Submit handles the multipart application form. A freshly uploaded CV wins;
// otherwise the applicant's stored CV is reused.
func Submit(svc applications.Service, profiles profileFetcher, uploader uploads.Uploader, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "applications service unavailable"))
			return
		}

		applicantID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := validators.ParseUUIDParam(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body := applications.SubmitRequest{
			FirstName:      strings.TrimSpace(r.FormValue("firstName")),
			LastName:       strings.TrimSpace(r.FormValue("lastName")),
			CNIC:           strings.TrimSpace(r.FormValue("cnic")),
			City:           strings.TrimSpace(r.FormValue("city")),
			Country:        strings.TrimSpace(r.FormValue("country")),
			Address:        strings.TrimSpace(r.FormValue("address")),
			Experience:     enums.ApplicantExperience(strings.TrimSpace(r.FormValue("experience"))),
			ExpectedSalary: strings.TrimSpace(r.FormValue("expectedSalary")),
		}

		file, err := uploads.CVFile(r, "cv", cfg.Upload.CVMaxBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		switch {
		case file != nil:
			defer file.Close()
			if uploader == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "file storage unavailable"))
				return
			}
			url, err := uploader.Upload(r.Context(), cfg.GCS.CVFolder, file.Name, file.ContentType, file.Reader)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store CV"))
				return
			}
			body.CVURL = url
		default:
			applicant, err := profiles.FindByID(r.Context(), applicantID)
			if err == nil && applicant.CVURL != nil {
				body.CVURL = *applicant.CVURL
			}
		}

		if err := validators.ValidateStruct(&body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		application, err := svc.Submit(r.Context(), applicantID, jobID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, application)
	}
}

// ListMine pages through the current applicant's submissions.
func ListMine(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicantID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListMine(r.Context(), applicantID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListForEmployer pages through applications across the employer's jobs,
// optionally scoped by jobId and status query parameters.
func ListForEmployer(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := applications.EmployerFilters{
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("jobId")); raw != "" {
			jobID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "jobId must be a UUID"))
				return
			}
			filters.JobID = &jobID
		}

		result, err := svc.ListForEmployer(r.Context(), employerID, applications.ListQuery{Filters: filters, Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ListForJob pages through applications for one job the employer owns.
func ListForJob(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := validators.ParseUUIDParam(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListForJob(r.Context(), employerID, jobID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateStatus moves an application through the hiring pipeline.
func UpdateStatus(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		applicationID, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body applications.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		application, err := svc.UpdateStatus(r.Context(), employerID, applicationID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, application)
	}
}

// CheckStatus tells the applicant whether they already applied to a job.
func CheckStatus(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicantID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		jobID, err := validators.ParseUUIDParam(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		check, err := svc.CheckStatus(r.Context(), applicantID, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, check)
	}
}

func currentUserID(r *http.Request) (uuid.UUID, error) {
	userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return userID, nil
}
