package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"sehatsaathi/backend/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	migrations.Run(db)
	return db
}

func writeCatalog(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "medicines.csv")
	header := "name,category,quantity,price,expiry_date,supplier,batch_number,pharmacy_name,pharmacy_location\n"
	require.NoError(t, os.WriteFile(path, []byte(header+rows), 0o644))
	return path
}

func TestLoadMedicines(t *testing.T) {
	db := newTestDB(t)
	path := writeCatalog(t,
		"Paracetamol 500mg,Pain Relief,120,2.50,2026-06-15,Sun Pharma,PB2301,Gramin Medical Store,Rampur\n"+
			"ORS Sachet,General,0,18.50,2026-02-28,FDC,OR4419,Gramin Medical Store,Rampur\n"+
			"Metformin 500mg,Diabetes,200,4.10,2027-01-20,USV,MF8812,Sehat Pharmacy,Bilaspur\n")

	LoadMedicines(db, path)

	var pharmacies, medicines int
	require.NoError(t, db.Get(&pharmacies, `SELECT COUNT(*) FROM pharmacies`))
	require.NoError(t, db.Get(&medicines, `SELECT COUNT(*) FROM medicines`))
	assert.Equal(t, 2, pharmacies)
	assert.Equal(t, 3, medicines)

	// Reloading the same catalog does not duplicate rows.
	LoadMedicines(db, path)
	require.NoError(t, db.Get(&pharmacies, `SELECT COUNT(*) FROM pharmacies`))
	require.NoError(t, db.Get(&medicines, `SELECT COUNT(*) FROM medicines`))
	assert.Equal(t, 2, pharmacies)
	assert.Equal(t, 3, medicines)
}

func TestLoadMedicinesMissingFile(t *testing.T) {
	db := newTestDB(t)

	// Absent catalog is a warning, not a failure.
	LoadMedicines(db, filepath.Join(t.TempDir(), "missing.csv"))

	var medicines int
	require.NoError(t, db.Get(&medicines, `SELECT COUNT(*) FROM medicines`))
	assert.Zero(t, medicines)
}

func TestLoadDoctors(t *testing.T) {
	db := newTestDB(t)

	LoadDoctors(db)
	var doctors int
	require.NoError(t, db.Get(&doctors, `SELECT COUNT(*) FROM doctor_profiles`))
	assert.Equal(t, 3, doctors)

	// Idempotent.
	LoadDoctors(db)
	require.NoError(t, db.Get(&doctors, `SELECT COUNT(*) FROM doctor_profiles`))
	assert.Equal(t, 3, doctors)
}
