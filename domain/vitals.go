package domain

type VitalReading struct {
	ID         string `db:"id" json:"id"`
	PatientID  string `db:"patient_id" json:"patientId"`
	Systolic   int64  `db:"systolic" json:"systolic"`
	Diastolic  int64  `db:"diastolic" json:"diastolic"`
	BloodSugar int64  `db:"blood_sugar" json:"bloodSugar"`
	HeartRate  int64  `db:"heart_rate" json:"heartRate"`
	RecordedAt string `db:"recorded_at" json:"recordedAt"`
}
