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

type createApprovalRequest struct {
	MedicineName string `json:"medicineName"`
	Notes        string `json:"notes"`
}

func (h *Handler) createApproval(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RolePatient) {
		return
	}
	var req createApprovalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.MedicineName) == "" {
		respondError(w, http.StatusBadRequest, "medicineName is required")
		return
	}

	approval := domain.ApprovalRequest{
		ID:           uuid.NewString(),
		PatientID:    userIDFromContext(r),
		MedicineName: strings.TrimSpace(req.MedicineName),
		Notes:        req.Notes,
		Status:       domain.ApprovalPending,
		RequestDate:  nowStamp(),
	}
	if _, err := h.db.NamedExec(`INSERT INTO approval_requests (id, patient_id, medicine_name, notes, status, request_date)
        VALUES (:id, :patient_id, :medicine_name, :notes, :status, :request_date)`, approval); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to submit approval request")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Approval request submitted",
		"request": approval,
	})
}

// listApprovals shows a patient their own requests and a doctor the pending
// queue awaiting review.
func (h *Handler) listApprovals(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RolePatient, domain.RoleDoctor) {
		return
	}
	role := r.Context().Value(ctxRole).(string)

	requests := []domain.ApprovalRequest{}
	var err error
	if role == domain.RolePatient {
		err = h.db.Select(&requests, `SELECT * FROM approval_requests WHERE patient_id = ? ORDER BY request_date DESC`,
			userIDFromContext(r))
	} else {
		err = h.db.Select(&requests, `SELECT * FROM approval_requests WHERE status = ? ORDER BY request_date ASC`,
			domain.ApprovalPending)
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list approval requests")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "requests": requests})
}

type decideApprovalRequest struct {
	Status      string `json:"status"`
	DoctorNotes string `json:"doctorNotes"`
}

// decideApproval moves a pending request to approved or rejected, exactly once.
func (h *Handler) decideApproval(w http.ResponseWriter, r *http.Request) {
	if !h.requireRole(w, r, domain.RoleDoctor) {
		return
	}
	approvalID := chi.URLParam(r, "approvalID")

	var req decideApprovalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Status != domain.ApprovalApproved && req.Status != domain.ApprovalRejected {
		respondError(w, http.StatusBadRequest, "status must be approved or rejected")
		return
	}

	var approval domain.ApprovalRequest
	if err := h.db.Get(&approval, `SELECT * FROM approval_requests WHERE id = ?`, approvalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Approval request not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to load approval request")
		return
	}
	if approval.Status != domain.ApprovalPending {
		respondError(w, http.StatusBadRequest, "request already decided")
		return
	}

	decidedAt := nowStamp()
	if _, err := h.db.Exec(`UPDATE approval_requests SET status = ?, doctor_notes = ?, decided_at = ? WHERE id = ?`,
		req.Status, req.DoctorNotes, decidedAt, approvalID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update approval request")
		return
	}

	approval.Status = req.Status
	approval.DoctorNotes = &req.DoctorNotes
	approval.DecidedAt = &decidedAt
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Approval request " + req.Status,
		"request": approval,
	})
}
