package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sehatsaathi/backend/domain"
)

const doctorColumns = `u.id, u.username AS name, d.specialty, d.rating, d.experience,
        d.location, d.available, d.next_slot, d.consultation_fee`

func (h *Handler) listDoctors(w http.ResponseWriter, r *http.Request) {
	doctors := []domain.Doctor{}
	err := h.db.Select(&doctors, `SELECT `+doctorColumns+`
        FROM doctor_profiles d
        JOIN users u ON u.id = d.user_id
        ORDER BY u.username`)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list doctors")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "doctors": doctors})
}

func (h *Handler) getDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID := chi.URLParam(r, "doctorID")

	var doctor domain.Doctor
	err := h.db.Get(&doctor, `SELECT `+doctorColumns+`
        FROM doctor_profiles d
        JOIN users u ON u.id = d.user_id
        WHERE u.id = ?`, doctorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Doctor not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to get doctor")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "doctor": doctor})
}
