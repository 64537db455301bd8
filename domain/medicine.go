package domain

// Categories a medicine record may carry. Anything else is rejected on add.
var MedicineCategories = []string{
	"Pain Relief",
	"Antibiotic",
	"Respiratory",
	"Cardiovascular",
	"Diabetes",
	"General",
	"Vitamins",
}

// ValidCategory reports whether c is one of the allowed medicine categories.
func ValidCategory(c string) bool {
	for _, known := range MedicineCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Medicine struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Category    string  `db:"category" json:"category"`
	Quantity    int64   `db:"quantity" json:"quantity"`
	Price       float64 `db:"price" json:"price"`
	ExpiryDate  string  `db:"expiry_date" json:"expiryDate"`
	Supplier    string  `db:"supplier" json:"supplier"`
	BatchNumber string  `db:"batch_number" json:"batchNumber"`
	PharmacyID  string  `db:"pharmacy_id" json:"pharmacyId"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt"`
}
