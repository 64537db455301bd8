package domain

// Approval request statuses.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// ApprovalRequest is a patient's prescription submitted for doctor review.
type ApprovalRequest struct {
	ID           string  `db:"id" json:"id"`
	PatientID    string  `db:"patient_id" json:"patientId"`
	MedicineName string  `db:"medicine_name" json:"medicineName"`
	Notes        string  `db:"notes" json:"notes"`
	Status       string  `db:"status" json:"status"`
	DoctorNotes  *string `db:"doctor_notes" json:"doctorNotes,omitempty"`
	RequestDate  string  `db:"request_date" json:"requestDate"`
	DecidedAt    *string `db:"decided_at" json:"decidedAt,omitempty"`
}
