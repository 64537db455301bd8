package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"sehatsaathi/backend/domain"
)

type recordVitalsRequest struct {
	Systolic   *int64 `json:"systolic"`
	Diastolic  *int64 `json:"diastolic"`
	BloodSugar *int64 `json:"bloodSugar"`
	HeartRate  *int64 `json:"heartRate"`
}

func (h *Handler) recordVitals(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RolePatient) {
		return
	}
	var req recordVitalsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, v := range []*int64{req.Systolic, req.Diastolic, req.BloodSugar, req.HeartRate} {
		if v == nil || *v <= 0 {
			respondError(w, http.StatusBadRequest, "systolic, diastolic, bloodSugar and heartRate must all be positive")
			return
		}
	}

	reading := domain.VitalReading{
		ID:         uuid.NewString(),
		PatientID:  userIDFromContext(r),
		Systolic:   *req.Systolic,
		Diastolic:  *req.Diastolic,
		BloodSugar: *req.BloodSugar,
		HeartRate:  *req.HeartRate,
		RecordedAt: nowStamp(),
	}
	if _, err := h.db.NamedExec(`INSERT INTO vital_readings (id, patient_id, systolic, diastolic, blood_sugar, heart_rate, recorded_at)
        VALUES (:id, :patient_id, :systolic, :diastolic, :blood_sugar, :heart_rate, :recorded_at)`, reading); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record vitals")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Vitals recorded",
		"reading": reading,
	})
}

// listVitals returns the caller's reading history, newest first, optionally
// bounded by startDate/endDate (inclusive, YYYY-MM-DD).
func (h *Handler) listVitals(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RolePatient) {
		return
	}

	args := []any{userIDFromContext(r)}
	clauses := []string{"patient_id = ?"}

	if startDate := strings.TrimSpace(r.URL.Query().Get("startDate")); startDate != "" {
		date, ok := parseDate(startDate)
		if !ok {
			respondError(w, http.StatusBadRequest, "startDate must be in YYYY-MM-DD format")
			return
		}
		args = append(args, date)
		clauses = append(clauses, "DATE(recorded_at) >= ?")
	}
	if endDate := strings.TrimSpace(r.URL.Query().Get("endDate")); endDate != "" {
		date, ok := parseDate(endDate)
		if !ok {
			respondError(w, http.StatusBadRequest, "endDate must be in YYYY-MM-DD format")
			return
		}
		args = append(args, date)
		clauses = append(clauses, "DATE(recorded_at) <= ?")
	}

	readings := []domain.VitalReading{}
	query := `SELECT * FROM vital_readings WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY recorded_at DESC`
	if err := h.db.Select(&readings, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list vitals")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "readings": readings})
}
