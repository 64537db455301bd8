package domain

// Appointment statuses.
const (
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	ID        string `db:"id" json:"id"`
	PatientID string `db:"patient_id" json:"patientId"`
	DoctorID  string `db:"doctor_id" json:"doctorId"`
	Date      string `db:"date" json:"date"`
	Time      string `db:"time" json:"time"`
	Status    string `db:"status" json:"status"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}
