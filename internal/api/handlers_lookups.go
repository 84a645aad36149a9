// Synthmap - Chemical Manufacturing Catalog Statistics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/synthmap

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/synthmap/internal/database"
	"github.com/tomtom215/synthmap/internal/logging"
	"github.com/tomtom215/synthmap/internal/models"
)

// Lookups lists the codes of one lookup family, so clients can offer valid
// chemistries and certifications filter values.
//
// @Summary List lookup codes
// @Description Returns id, code and name of every entry in a lookup family, ordered by code.
// @Tags Lookups
// @Produce json
// @Param family path string true "Lookup family" Enums(processes, certifications, equipment, analytics, services)
// @Success 200 {object} models.APIResponse{data=[]models.LookupEntry} "Lookup entries"
// @Failure 400 {object} models.APIResponse "Unknown family"
// @Failure 500 {object} models.APIResponse "Database error"
// @Router /api/lookups/{family} [get]
func (h *Handler) Lookups(w http.ResponseWriter, r *http.Request) {
	req := newLookupRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Database not available", ErrStoreUnavailable)
		return
	}

	start := time.Now()
	entries, err := h.store.ListLookups(r.Context(), models.LookupFamily(req.Family))
	if err != nil {
		if errors.Is(err, database.ErrUnknownLookupFamily) {
			respondError(w, http.StatusNotFound, ErrCodeNotFound, err.Error(), nil)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("family", req.Family).Msg("List lookups failed")
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "Failed to list lookups", nil)
		return
	}

	respondSuccess(w, entries, models.Metadata{
		Timestamp:   time.Now(),
		QueryTimeMS: time.Since(start).Milliseconds(),
	})
}
