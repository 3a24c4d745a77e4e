package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/0dillon/HNG1/internal/filter"
	"github.com/0dillon/HNG1/internal/ir"
	"github.com/0dillon/HNG1/internal/nlquery"
	"github.com/0dillon/HNG1/internal/queryir"
)

// Service is the engine surface the handlers depend on.
// Implemented by *engine.Engine.
type Service interface {
	Create(ctx context.Context, value string) (ir.StringRecord, error)
	Get(ctx context.Context, value string) (ir.StringRecord, error)
	Delete(ctx context.Context, value string) error
	List(ctx context.Context, c queryir.Criteria) ([]ir.StringRecord, error)
	Interpret(ctx context.Context, query string) (nlquery.Interpretation, []ir.StringRecord, error)
}

// naturalLanguagePath is the value segment reserved for free-text filtering.
const naturalLanguagePath = "filter-by-natural-language"

// listResponse is the body of GET /strings.
type listResponse struct {
	Data           []ir.StringRecord `json:"data"`
	Count          int               `json:"count"`
	FiltersApplied map[string]string `json:"filters_applied"`
}

// interpretResponse is the body of GET /strings/filter-by-natural-language.
type interpretResponse struct {
	Data             []ir.StringRecord      `json:"data"`
	Count            int                    `json:"count"`
	InterpretedQuery nlquery.Interpretation `json:"interpreted_query"`
}

type handlers struct {
	svc Service
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// createString handles POST /strings.
//
// Body validation order: unparseable or empty body, missing value, value of
// the wrong type. An empty string is a valid value.
func (h *handlers) createString(c *gin.Context) {
	var payload any
	if err := c.ShouldBindJSON(&payload); err != nil || isEmptyJSON(payload) {
		abortWithMessage(c, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		abortWithMessage(c, http.StatusBadRequest, msgMissingValue)
		return
	}
	raw, ok := obj["value"]
	if !ok {
		abortWithMessage(c, http.StatusBadRequest, msgMissingValue)
		return
	}
	value, ok := raw.(string)
	if !ok {
		abortWithMessage(c, http.StatusUnprocessableEntity, msgValueNotString)
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), value)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// getString handles GET /strings/*value, including the natural-language
// filter, which cannot be a sibling of a catch-all route.
func (h *handlers) getString(c *gin.Context) {
	value, ok := pathValue(c)
	if !ok {
		abortWithMessage(c, http.StatusNotFound, msgNotFound)
		return
	}
	if value == naturalLanguagePath {
		h.filterByNaturalLanguage(c)
		return
	}

	rec, err := h.svc.Get(c.Request.Context(), value)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// deleteString handles DELETE /strings/*value.
func (h *handlers) deleteString(c *gin.Context) {
	value, ok := pathValue(c)
	if !ok {
		abortWithMessage(c, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), value); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listStrings handles GET /strings.
func (h *handlers) listStrings(c *gin.Context) {
	params := c.Request.URL.Query()

	criteria, err := filter.ParseParams(params)
	if err != nil {
		abortWithArgumentError(c, err)
		return
	}

	recs, err := h.svc.List(c.Request.Context(), criteria)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{
		Data:           recs,
		Count:          len(recs),
		FiltersApplied: filter.AppliedFilters(params),
	})
}

// filterByNaturalLanguage handles GET /strings/filter-by-natural-language.
func (h *handlers) filterByNaturalLanguage(c *gin.Context) {
	interp, recs, err := h.svc.Interpret(c.Request.Context(), c.Query("query"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, interpretResponse{
		Data:             recs,
		Count:            len(recs),
		InterpretedQuery: interp,
	})
}

// pathValue extracts the catch-all value. gin includes the leading slash.
// Reports false for an empty value.
func pathValue(c *gin.Context) (string, bool) {
	v := strings.TrimPrefix(c.Param("value"), "/")
	return v, v != ""
}

func abortWithArgumentError(c *gin.Context, err error) {
	var argErr *queryir.ArgumentError
	if errors.As(err, &argErr) {
		abortWithMessage(c, http.StatusBadRequest, argErr.Message)
		return
	}
	abortWithError(c, err)
}

// isEmptyJSON reports whether a decoded JSON document is null, false, zero,
// or an empty string, array or object.
func isEmptyJSON(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	default:
		return false
	}
}
