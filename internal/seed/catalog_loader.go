package seed

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// LoadMedicines ingests the demo catalog CSV into the pharmacies and medicines
// tables, ignoring rows already present. Expected columns:
// name,category,quantity,price,expiry_date,supplier,batch_number,pharmacy_name,pharmacy_location
func LoadMedicines(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Warn().Err(err).Str("path", csvPath).Msg("unable to load medicine catalog")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Warn().Err(err).Msg("unable to read medicine catalog header")
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Warn().Err(err).Msg("unable to start catalog transaction")
		return
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	pharmacies := map[string]string{}
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Msg("unable to read catalog row")
			continue
		}
		if len(record) < 9 {
			continue
		}
		name := strings.TrimSpace(record[0])
		category := strings.TrimSpace(record[1])
		quantity, _ := strconv.ParseInt(strings.TrimSpace(record[2]), 10, 64)
		price, _ := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		expiry := strings.TrimSpace(record[4])
		supplier := strings.TrimSpace(record[5])
		batch := strings.TrimSpace(record[6])
		pharmacyName := strings.TrimSpace(record[7])
		pharmacyLocation := strings.TrimSpace(record[8])

		if name == "" || pharmacyName == "" {
			continue
		}

		pharmacyID, ok := pharmacies[pharmacyName]
		if !ok {
			if err := tx.Get(&pharmacyID, `SELECT id FROM pharmacies WHERE name = ?`, pharmacyName); err != nil {
				pharmacyID = uuid.NewString()
				if _, err := tx.Exec(`INSERT INTO pharmacies (id, name, location, created_at) VALUES (?, ?, ?, ?)`,
					pharmacyID, pharmacyName, pharmacyLocation, now); err != nil {
					log.Warn().Err(err).Str("pharmacy", pharmacyName).Msg("unable to insert pharmacy")
					continue
				}
			}
			pharmacies[pharmacyName] = pharmacyID
		}

		var exists bool
		if err := tx.Get(&exists, `SELECT EXISTS(SELECT 1 FROM medicines WHERE name = ? AND batch_number = ?)`, name, batch); err == nil && exists {
			continue
		}
		_, err = tx.Exec(`INSERT INTO medicines (id, name, category, quantity, price, expiry_date, supplier, batch_number, pharmacy_id, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), name, category, quantity, price, expiry, supplier, batch, pharmacyID, now, now)
		if err != nil {
			log.Warn().Err(err).Str("medicine", name).Msg("unable to insert medicine")
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("unable to commit medicine catalog")
	} else {
		log.Info().Int("rows", rows).Msg("seeded medicine catalog")
	}
}

// LoadDoctors inserts the demo doctor directory if no doctors exist yet.
func LoadDoctors(db *sqlx.DB) {
	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM doctor_profiles`); err != nil {
		log.Warn().Err(err).Msg("unable to count doctor profiles")
		return
	}
	if count > 0 {
		return
	}

	demo := []struct {
		name, email, specialty, experience, location, nextSlot string
		rating, fee                                            float64
		available                                              bool
	}{
		{"Dr. Anil Kumar", "anil.kumar@sehatsaathi.in", "Cardiology", "15 years", "Delhi, India", "11:00 AM", 4.8, 800, true},
		{"Dr. Sunita Sharma", "sunita.sharma@sehatsaathi.in", "Dermatology", "12 years", "Mumbai, India", "Tomorrow", 4.9, 1000, false},
		{"Dr. Rajesh Gupta", "rajesh.gupta@sehatsaathi.in", "General Physician", "10 years", "Bangalore, India", "04:00 PM", 4.7, 500, true},
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, d := range demo {
		id := uuid.NewString()
		if _, err := db.Exec(`INSERT INTO users (id, username, email, password, role, created_at) VALUES (?, ?, ?, ?, 'doctor', ?)`,
			id, d.name, d.email, "", now); err != nil {
			log.Warn().Err(err).Str("doctor", d.name).Msg("unable to insert demo doctor")
			continue
		}
		if _, err := db.Exec(`INSERT INTO doctor_profiles (user_id, specialty, rating, experience, location, available, next_slot, consultation_fee)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, d.specialty, d.rating, d.experience, d.location, d.available, d.nextSlot, d.fee); err != nil {
			log.Warn().Err(err).Str("doctor", d.name).Msg("unable to insert doctor profile")
		}
	}
	log.Info().Int("rows", len(demo)).Msg("seeded doctor directory")
}
