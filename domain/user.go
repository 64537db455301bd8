package domain

// Roles a session can carry.
const (
	RolePatient    = "patient"
	RoleDoctor     = "doctor"
	RolePharmacist = "pharmacist"
)

type User struct {
	ID         string  `db:"id" json:"id"`
	Username   string  `db:"username" json:"username"`
	Email      string  `db:"email" json:"email"`
	Password   string  `db:"password" json:"password,omitempty"`
	Role       string  `db:"role" json:"role"`
	PharmacyID *string `db:"pharmacy_id" json:"pharmacyId,omitempty"`
	CreatedAt  string  `db:"created_at" json:"createdAt,omitempty"`
}

// Doctor is the directory view of a doctor user joined with their profile.
type Doctor struct {
	ID              string  `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Specialty       string  `db:"specialty" json:"specialty"`
	Rating          float64 `db:"rating" json:"rating"`
	Experience      string  `db:"experience" json:"experience"`
	Location        string  `db:"location" json:"location"`
	Available       bool    `db:"available" json:"available"`
	NextSlot        string  `db:"next_slot" json:"nextSlot"`
	ConsultationFee float64 `db:"consultation_fee" json:"consultationFee"`
}
