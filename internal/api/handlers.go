package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/loadmatch/internal/geocoding"
	"github.com/UnknownOlympus/loadmatch/internal/matcher"
	"github.com/UnknownOlympus/loadmatch/internal/models"
	"github.com/UnknownOlympus/loadmatch/internal/service"
)

const maxBodyBytes = 1 << 20

// Health pings the database.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status, body := http.StatusOK, "OK"
	if err := h.db.Ping(r.Context()); err != nil {
		h.log.WarnContext(r.Context(), "Health check failed", "error", err)
		status, body = http.StatusServiceUnavailable, "DB ping failed"
	}

	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		h.log.ErrorContext(r.Context(), "failed to write reply", "error", err)
	}
}

// Geocode resolves a single location descriptor.
func (h *Handler) Geocode(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if !h.decode(w, r, &req) {
		return
	}

	coord, err := h.matching.Geocode(r.Context(), models.LocationQuery{
		PostalCode: req.PostalCode,
		City:       req.City,
		State:      req.State,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newCoordinateResponse(coord))
}

// Distance returns the great-circle distance between the from and to query parameters.
func (h *Handler) Distance(w http.ResponseWriter, r *http.Request) {
	from, err := parseLatLng(r.URL.Query().Get("from"))
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := parseLatLng(r.URL.Query().Get("to"))
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, "to: "+err.Error())
		return
	}

	h.writeJSON(w, r, http.StatusOK, DistanceResponse{Miles: h.matching.DistanceBetween(from, to)})
}

// Match ranks the given candidates, or the open load board when none are given, against a route.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.MaxAddedMiles < 0 {
		h.writeError(w, r, http.StatusBadRequest, "max_added_miles must not be negative")
		return
	}

	route, err := req.route()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var scores []models.DetourScore
	if req.Candidates == nil {
		scores, err = h.matching.MatchOpenLoads(r.Context(), route, req.MaxAddedMiles, h.matchLimit)
	} else {
		var candidates []service.Candidate
		candidates, err = req.candidates()
		if err != nil {
			h.fail(w, r, err)
			return
		}
		scores, err = h.matching.Rank(r.Context(), service.MatchRequest{
			Route:         route,
			Candidates:    candidates,
			MaxAddedMiles: req.MaxAddedMiles,
		})
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, newMatchResponse(scores))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		h.writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}

	return true
}

// fail maps domain errors onto HTTP statuses. LookupUnavailable is checked first since it may wrap
// an invalid coordinate returned by the lookup service.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, geocoding.ErrLookupUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, geocoding.ErrInvalidLocationInput), errors.Is(err, models.ErrInvalidCoordinate):
		status = http.StatusBadRequest
	case errors.Is(err, geocoding.ErrLocationUnresolved), errors.Is(err, matcher.ErrInsufficientRoute):
		status = http.StatusUnprocessableEntity
	default:
		h.log.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeError(w, r, status, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.ErrorContext(r.Context(), "encode failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, map[string]string{"error": msg})
}

// parseLatLng parses "lat,lng".
func parseLatLng(raw string) (models.Coordinate, error) {
	latRaw, lngRaw, ok := strings.Cut(raw, ",")
	if !ok {
		return models.Coordinate{}, fmt.Errorf("expected lat,lng, got %q", raw)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid latitude %q", latRaw)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid longitude %q", lngRaw)
	}

	return models.NewCoordinate(lat, lng)
}
