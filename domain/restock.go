package domain

import "time"

// RestockRequest is an ephemeral replenishment request. It is published on the
// in-process bus and logged, never persisted; nothing advances it past "pending".
type RestockRequest struct {
	MedicineID  string    `json:"medicineId"`
	PharmacyID  string    `json:"pharmacyId"`
	PatientID   string    `json:"patientId"`
	RequestDate time.Time `json:"requestDate"`
	Status      string    `json:"status"`
}
