package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sehatsaathi/backend/domain"
)

type bookAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

func (h *Handler) bookAppointment(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RolePatient) {
		return
	}
	var req bookAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DoctorID == "" || strings.TrimSpace(req.Time) == "" {
		respondError(w, http.StatusBadRequest, "doctorId, date and time are required")
		return
	}
	date, ok := parseDate(req.Date)
	if !ok {
		respondError(w, http.StatusBadRequest, "date must be a valid date (YYYY-MM-DD)")
		return
	}

	var exists bool
	if err := h.db.Get(&exists, `SELECT EXISTS(SELECT 1 FROM doctor_profiles WHERE user_id = ?)`, req.DoctorID); err != nil || !exists {
		respondError(w, http.StatusNotFound, "Doctor not found")
		return
	}

	appt := domain.Appointment{
		ID:        uuid.NewString(),
		PatientID: userIDFromContext(r),
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Status:    domain.AppointmentConfirmed,
		CreatedAt: nowStamp(),
	}
	if _, err := h.db.NamedExec(`INSERT INTO appointments (id, patient_id, doctor_id, date, time, status, created_at)
        VALUES (:id, :patient_id, :doctor_id, :date, :time, :status, :created_at)`, appt); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to book appointment")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"message":     "Appointment booked successfully",
		"appointment": appt,
	})
}

type appointmentView struct {
	domain.Appointment
	DoctorName  string `db:"doctor_name" json:"doctorName"`
	Specialty   string `db:"specialty" json:"specialty"`
	PatientName string `db:"patient_name" json:"patientName"`
}

// listAppointments returns the caller's own appointments: a patient sees the
// ones they booked, a doctor the ones booked with them.
func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RolePatient, domain.RoleDoctor) {
		return
	}
	userID := userIDFromContext(r)
	role := r.Context().Value(ctxRole).(string)

	who := `a.patient_id = ?`
	if role == domain.RoleDoctor {
		who = `a.doctor_id = ?`
	}
	appointments := []appointmentView{}
	err := h.db.Select(&appointments, `SELECT a.*, du.username AS doctor_name,
            COALESCE(d.specialty, '') AS specialty, pu.username AS patient_name
        FROM appointments a
        JOIN users du ON du.id = a.doctor_id
        LEFT JOIN doctor_profiles d ON d.user_id = a.doctor_id
        JOIN users pu ON pu.id = a.patient_id
        WHERE `+who+`
        ORDER BY a.date DESC, a.time DESC`, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list appointments")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "appointments": appointments})
}

func (h *Handler) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RolePatient) {
		return
	}
	appointmentID := chi.URLParam(r, "appointmentID")

	var appt domain.Appointment
	if err := h.db.Get(&appt, `SELECT * FROM appointments WHERE id = ?`, appointmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Appointment not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}
	if appt.PatientID != userIDFromContext(r) {
		respondError(w, http.StatusForbidden, "appointment does not belong to you")
		return
	}
	if appt.Status == domain.AppointmentCompleted {
		respondError(w, http.StatusBadRequest, "completed appointments cannot be cancelled")
		return
	}

	if _, err := h.db.Exec(`UPDATE appointments SET status = ? WHERE id = ?`,
		domain.AppointmentCancelled, appointmentID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Appointment cancelled"})
}
