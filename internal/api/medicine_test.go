package api

import (
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sehatsaathi/backend/domain"
)

func TestSearchRequiresQuery(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodGet, "/medicines/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	status, _ = env.request(t, http.MethodGet, "/medicines/search?query=%20%20", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSearchCaseInsensitiveWithAvailability(t *testing.T) {
	env := newTestEnv(t)
	pharmacyID := env.seedPharmacy(t, "Gramin Medical Store", "Rampur")
	env.addMedicine(t, pharmacyID, "Paracetamol 500mg", 0)
	env.addMedicine(t, pharmacyID, "PARACETAMOL Syrup", 12)
	env.addMedicine(t, pharmacyID, "Ibuprofen 400mg", 5)

	status, body := env.request(t, http.MethodGet, "/medicines/search?query=paracetamol", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 2, body["count"])

	byName := map[string]map[string]any{}
	for _, raw := range body["medicines"].([]any) {
		med := raw.(map[string]any)
		byName[med["name"].(string)] = med
	}
	require.Contains(t, byName, "Paracetamol 500mg")
	require.Contains(t, byName, "PARACETAMOL Syrup")
	assert.Equal(t, false, byName["Paracetamol 500mg"]["available"])
	assert.Equal(t, true, byName["PARACETAMOL Syrup"]["available"])
	assert.Equal(t, "Gramin Medical Store", byName["Paracetamol 500mg"]["pharmacyName"])
	assert.Equal(t, "Rampur", byName["Paracetamol 500mg"]["pharmacyLocation"])
}

func TestSearchNoMatchesReturnsEmptyList(t *testing.T) {
	env := newTestEnv(t)
	pharmacyID := env.seedPharmacy(t, "Gramin Medical Store", "Rampur")
	env.addMedicine(t, pharmacyID, "Ibuprofen 400mg", 5)

	status, body := env.request(t, http.MethodGet, "/medicines/search?query=insulin", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["count"])
	assert.Empty(t, body["medicines"])
}

func TestAddMedicineValidation(t *testing.T) {
	env := newTestEnv(t)
	pharmacyID := env.seedPharmacy(t, "Gramin Medical Store", "Rampur")

	valid := func() map[string]any {
		return map[string]any{
			"name":        "Paracetamol 500mg",
			"category":    "Pain Relief",
			"quantity":    10,
			"price":       2.5,
			"expiryDate":  "2026-06-15",
			"supplier":    "Sun Pharma",
			"batchNumber": "B1",
			"pharmacyId":  pharmacyID,
		}
	}

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing name", func(m map[string]any) { m["name"] = "" }},
		{"category outside enum", func(m map[string]any) { m["category"] = "Homeopathy" }},
		{"missing quantity", func(m map[string]any) { delete(m, "quantity") }},
		{"negative quantity", func(m map[string]any) { m["quantity"] = -1 }},
		{"missing price", func(m map[string]any) { delete(m, "price") }},
		{"negative price", func(m map[string]any) { m["price"] = -0.5 }},
		{"bad expiry date", func(m map[string]any) { m["expiryDate"] = "June 2026" }},
		{"missing supplier", func(m map[string]any) { m["supplier"] = "" }},
		{"missing batch number", func(m map[string]any) { m["batchNumber"] = "" }},
		{"missing pharmacy", func(m map[string]any) { m["pharmacyId"] = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := valid()
			tt.mutate(payload)
			status, body := env.request(t, http.MethodPost, "/medicines/add", "", payload)
			assert.Equal(t, http.StatusBadRequest, status, "body: %v", body)
		})
	}

	status, body := env.request(t, http.MethodPost, "/medicines/add", "", valid())
	require.Equal(t, http.StatusCreated, status)
	medicine := body["medicine"].(map[string]any)
	assert.Equal(t, "Medicine added successfully", body["message"])
	assert.EqualValues(t, 10, medicine["quantity"])
	assert.Equal(t, "Pain Relief", medicine["category"])
	assert.Equal(t, "2026-06-15", medicine["expiryDate"])
	assert.NotEmpty(t, medicine["id"])
	assert.NotEmpty(t, medicine["createdAt"])
}

func TestUpdateQuantity(t *testing.T) {
	env := newTestEnv(t)
	pharmacyID := env.seedPharmacy(t, "Gramin Medical Store", "Rampur")
	medicine := env.addMedicine(t, pharmacyID, "Paracetamol 500mg", 10)
	medicineID := medicine["id"].(string)

	status, _ := env.request(t, http.MethodPut, "/medicines/does-not-exist/quantity", "", map[string]any{"quantity": 5})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.request(t, http.MethodPut, "/medicines/"+medicineID+"/quantity", "", map[string]any{"quantity": -3})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := env.request(t, http.MethodPut, "/medicines/"+medicineID+"/quantity", "", map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, status)
	updated := body["medicine"].(map[string]any)
	assert.EqualValues(t, 5, updated["quantity"])
	assert.NotEqual(t, medicine["updatedAt"], updated["updatedAt"])
	assert.Equal(t, medicine["createdAt"], updated["createdAt"])

	// Last write wins, repeating is not an error.
	status, body = env.request(t, http.MethodPut, "/medicines/"+medicineID+"/quantity", "", map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 5, body["medicine"].(map[string]any)["quantity"])

	var stored int64
	require.NoError(t, env.db.Get(&stored, `SELECT quantity FROM medicines WHERE id = ?`, medicineID))
	assert.EqualValues(t, 5, stored)
}

func TestPharmacyMedicines(t *testing.T) {
	env := newTestEnv(t)
	pharmacyID := env.seedPharmacy(t, "Gramin Medical Store", "Rampur")
	otherID := env.seedPharmacy(t, "Sehat Pharmacy", "Bilaspur")
	env.addMedicine(t, pharmacyID, "Paracetamol 500mg", 10)
	env.addMedicine(t, otherID, "Metformin 500mg", 20)

	status, body := env.request(t, http.MethodGet, "/medicines/pharmacy/"+pharmacyID, "", nil)
	require.Equal(t, http.StatusOK, status)
	medicines := body["medicines"].([]any)
	require.Len(t, medicines, 1)
	assert.Equal(t, "Paracetamol 500mg", medicines[0].(map[string]any)["name"])

	// Unknown pharmacy id yields an empty list, not an error.
	status, body = env.request(t, http.MethodGet, "/medicines/pharmacy/"+url.PathEscape("no-such-pharmacy"), "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["medicines"])
}

func TestRequestRestock(t *testing.T) {
	env := newTestEnv(t)
	pharmacyID := env.seedPharmacy(t, "Gramin Medical Store", "Rampur")
	medicine := env.addMedicine(t, pharmacyID, "ORS Sachet", 0)

	var (
		mu        sync.Mutex
		published []domain.RestockRequest
	)
	require.NoError(t, env.handler.Bus().Subscribe(TopicRestockRequested, func(req domain.RestockRequest, pharmacyName string) {
		mu.Lock()
		defer mu.Unlock()
		published = append(published, req)
	}))

	status, _ := env.request(t, http.MethodPost, "/medicines/request-restock", "", map[string]any{
		"medicineId": "no-such-medicine",
		"pharmacyId": pharmacyID,
		"patientId":  "patient-1",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, body := env.request(t, http.MethodPost, "/medicines/request-restock", "", map[string]any{
		"medicineId": medicine["id"],
		"pharmacyId": pharmacyID,
		"patientId":  "patient-1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body["message"], "Gramin Medical Store")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, published, 1)
	assert.Equal(t, medicine["id"], published[0].MedicineID)
	assert.Equal(t, pharmacyID, published[0].PharmacyID)
	assert.Equal(t, "pending", published[0].Status)
}

func TestAddSearchRestockEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	pharmacyID := env.seedPharmacy(t, "Gramin Medical Store", "Rampur")
	medicine := env.addMedicine(t, pharmacyID, "Paracetamol 500mg", 0)

	status, body := env.request(t, http.MethodGet, "/medicines/search?query=paracetamol", "", nil)
	require.Equal(t, http.StatusOK, status)
	results := body["medicines"].([]any)
	require.Len(t, results, 1)
	found := results[0].(map[string]any)
	assert.Equal(t, false, found["available"])

	status, body = env.request(t, http.MethodPost, "/medicines/request-restock", "", map[string]any{
		"medicineId": medicine["id"],
		"pharmacyId": pharmacyID,
		"patientId":  "patient-1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["message"], "Gramin Medical Store")
}
