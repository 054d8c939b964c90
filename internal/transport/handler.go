package transport

import (
	"net/http"
	"strconv"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// decodeRequest decodes and validates a JSON body, answering 400 itself when
// the body is malformed or fails its validation tags.
func decodeRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)

		if middleware.IsValidationError(err) {
			middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// pathUUID parses a UUID route parameter
func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(param, "must be a valid UUID")
	}
	return id, nil
}

// queryUUID parses an optional UUID query filter
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a valid UUID")
	}
	return &id, nil
}

// queryBool parses an optional boolean query filter
func queryBool(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be true or false")
	}
	return &b, nil
}

func queryExpand(r *http.Request) domain.Expand {
	return domain.ParseExpand(r.URL.Query().Get("expand"))
}
