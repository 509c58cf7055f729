package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ev-charging/api/internal/api/middleware"
	"github.com/ev-charging/api/internal/api/types"
	"github.com/ev-charging/api/internal/models"
	"github.com/ev-charging/api/internal/services"
	appErr "github.com/ev-charging/api/pkg/errors"
)

type StationsHandler struct {
	responder
	svc services.StationService
}

func NewStationsHandler(svc services.StationService, hideErrors bool) *StationsHandler {
	return &StationsHandler{responder: responder{hideErrors: hideErrors}, svc: svc}
}

// List godoc
// @Summary  List charging stations
// @Tags     stations
// @Produce  json
// @Security BearerAuth
// @Param    status        query string false "Exact status"
// @Param    connectorType query string false "Exact connector type"
// @Param    minPower      query number false "Inclusive lower power bound"
// @Param    maxPower      query number false "Inclusive upper power bound"
// @Success  200 {object} types.ListResponse{data=[]models.StationWithCreator}
// @Failure  400 {object} types.ErrorResponse
// @Failure  401 {object} types.ErrorResponse
// @Router   /stations [get]
func (h *StationsHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	items, err := h.svc.List(r.Context(), f)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ListResponse{Success: true, Count: len(items), Data: items})
}

// Get godoc
// @Summary  Get a charging station
// @Tags     stations
// @Produce  json
// @Security BearerAuth
// @Param    id  path     string true "Station id"
// @Success  200 {object} types.DataResponse{data=models.StationWithCreator}
// @Failure  404 {object} types.ErrorResponse
// @Router   /stations/{id} [get]
func (h *StationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.DataResponse{Success: true, Data: st})
}

// Create godoc
// @Summary  Create a charging station
// @Tags     stations
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body     types.CreateStationRequest true "Station"
// @Success  201  {object} types.DataResponse{data=models.StationWithCreator}
// @Failure  400  {object} types.ErrorResponse
// @Router   /stations [post]
func (h *StationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateStationRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	st, err := h.svc.Create(r.Context(), middleware.GetUserID(r.Context()), req.ToStation())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.DataResponse{
		Success: true,
		Message: "Charging station created successfully",
		Data:    st,
	})
}

// Update godoc
// @Summary  Partially update a charging station
// @Tags     stations
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path     string                     true "Station id"
// @Param    body body     types.UpdateStationRequest true "Fields to change"
// @Success  200  {object} types.DataResponse{data=models.StationWithCreator}
// @Failure  400  {object} types.ErrorResponse
// @Failure  403  {object} types.ErrorResponse
// @Failure  404  {object} types.ErrorResponse
// @Router   /stations/{id} [put]
func (h *StationsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateStationRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	st, err := h.svc.Update(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"), req.ToPatch())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.DataResponse{
		Success: true,
		Message: "Charging station updated successfully",
		Data:    st,
	})
}

// Delete godoc
// @Summary  Delete a charging station
// @Tags     stations
// @Produce  json
// @Security BearerAuth
// @Param    id  path     string true "Station id"
// @Success  200 {object} types.DataResponse
// @Failure  403 {object} types.ErrorResponse
// @Failure  404 {object} types.ErrorResponse
// @Router   /stations/{id} [delete]
func (h *StationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.DataResponse{Success: true, Message: "Charging station deleted successfully"})
}

// parseFilter reads the list constraints from the query string. Empty
// values impose no constraint.
func parseFilter(q url.Values) (models.StationFilter, error) {
	f := models.StationFilter{
		Status:        models.StationStatus(strings.TrimSpace(q.Get("status"))),
		ConnectorType: models.ConnectorType(strings.TrimSpace(q.Get("connectorType"))),
	}
	var fields []appErr.FieldError
	for _, b := range []struct {
		key string
		dst **float64
	}{{"minPower", &f.MinPower}, {"maxPower", &f.MaxPower}} {
		raw := strings.TrimSpace(q.Get(b.key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields = append(fields, appErr.FieldError{Field: b.key, Message: "must be a number", Value: raw})
			continue
		}
		*b.dst = &v
	}
	if len(fields) > 0 {
		return f, appErr.Invalid(fields...)
	}
	return f, nil
}
