package migrations

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Run creates the database schema required for the backend.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            username TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            role TEXT NOT NULL,
            pharmacy_id TEXT,
            created_at TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS pharmacies (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            address TEXT NOT NULL DEFAULT '',
            location TEXT NOT NULL DEFAULT '',
            owner_id TEXT,
            created_at TEXT NOT NULL,
            FOREIGN KEY(owner_id) REFERENCES users(id)
        );`,
		`CREATE TABLE IF NOT EXISTS medicines (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            category TEXT NOT NULL,
            quantity INTEGER NOT NULL CHECK(quantity >= 0),
            price REAL NOT NULL CHECK(price >= 0),
            expiry_date TEXT NOT NULL,
            supplier TEXT NOT NULL,
            batch_number TEXT NOT NULL,
            pharmacy_id TEXT NOT NULL,
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL,
            FOREIGN KEY(pharmacy_id) REFERENCES pharmacies(id)
        );`,
		`CREATE INDEX IF NOT EXISTS idx_medicines_name ON medicines(name);`,
		`CREATE INDEX IF NOT EXISTS idx_medicines_category ON medicines(category);`,
		`CREATE INDEX IF NOT EXISTS idx_medicines_pharmacy ON medicines(pharmacy_id);`,
		`CREATE TABLE IF NOT EXISTS doctor_profiles (
            user_id TEXT PRIMARY KEY,
            specialty TEXT NOT NULL DEFAULT '',
            rating REAL NOT NULL DEFAULT 0,
            experience TEXT NOT NULL DEFAULT '',
            location TEXT NOT NULL DEFAULT '',
            available INTEGER NOT NULL DEFAULT 1,
            next_slot TEXT NOT NULL DEFAULT '',
            consultation_fee REAL NOT NULL DEFAULT 0,
            FOREIGN KEY(user_id) REFERENCES users(id)
        );`,
		`CREATE TABLE IF NOT EXISTS appointments (
            id TEXT PRIMARY KEY,
            patient_id TEXT NOT NULL,
            doctor_id TEXT NOT NULL,
            date TEXT NOT NULL,
            time TEXT NOT NULL,
            status TEXT NOT NULL,
            created_at TEXT NOT NULL,
            FOREIGN KEY(patient_id) REFERENCES users(id),
            FOREIGN KEY(doctor_id) REFERENCES users(id)
        );`,
		`CREATE TABLE IF NOT EXISTS vital_readings (
            id TEXT PRIMARY KEY,
            patient_id TEXT NOT NULL,
            systolic INTEGER NOT NULL,
            diastolic INTEGER NOT NULL,
            blood_sugar INTEGER NOT NULL,
            heart_rate INTEGER NOT NULL,
            recorded_at TEXT NOT NULL,
            FOREIGN KEY(patient_id) REFERENCES users(id)
        );`,
		`CREATE TABLE IF NOT EXISTS approval_requests (
            id TEXT PRIMARY KEY,
            patient_id TEXT NOT NULL,
            medicine_name TEXT NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            doctor_notes TEXT,
            request_date TEXT NOT NULL,
            decided_at TEXT,
            FOREIGN KEY(patient_id) REFERENCES users(id)
        );`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}
}
