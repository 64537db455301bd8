package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sehatsaathi/backend/domain"
)

type pharmacyRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Location string `json:"location"`
}

func (h *Handler) createPharmacy(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RolePharmacist) {
		return
	}
	var req pharmacyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	ownerID := userIDFromContext(r)
	pharmacy := domain.Pharmacy{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Address:   req.Address,
		Location:  req.Location,
		OwnerID:   &ownerID,
		CreatedAt: nowStamp(),
	}
	if _, err := h.db.NamedExec(`INSERT INTO pharmacies (id, name, address, location, owner_id, created_at)
        VALUES (:id, :name, :address, :location, :owner_id, :created_at)`, pharmacy); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create pharmacy")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "pharmacy": pharmacy})
}

func (h *Handler) updatePharmacy(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RolePharmacist) {
		return
	}
	pharmacyID := chi.URLParam(r, "pharmacyID")

	var pharmacy domain.Pharmacy
	if err := h.db.Get(&pharmacy, `SELECT * FROM pharmacies WHERE id = ?`, pharmacyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Pharmacy not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load pharmacy")
		return
	}
	if pharmacy.OwnerID == nil || *pharmacy.OwnerID != userIDFromContext(r) {
		respondError(w, http.StatusForbidden, "pharmacy does not belong to you")
		return
	}

	var req pharmacyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, err := h.db.Exec(`UPDATE pharmacies SET name = ?, address = ?, location = ? WHERE id = ?`,
		req.Name, req.Address, req.Location, pharmacyID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update pharmacy")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Pharmacy updated"})
}

func (h *Handler) listPharmacies(w http.ResponseWriter, r *http.Request) {
	pharmacies := []domain.Pharmacy{}
	if err := h.db.Select(&pharmacies, `SELECT * FROM pharmacies ORDER BY name`); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list pharmacies")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "pharmacies": pharmacies})
}
