package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"sehatsaathi/backend/domain"
)

// TopicRestockRequested is the bus topic restock requests are published on.
const TopicRestockRequested = "restock.requested"

type medicineSearchResult struct {
	ID               string  `db:"id" json:"id"`
	Name             string  `db:"name" json:"name"`
	Category         string  `db:"category" json:"category"`
	Quantity         int64   `db:"quantity" json:"quantity"`
	Price            float64 `db:"price" json:"price"`
	PharmacyName     string  `db:"pharmacy_name" json:"pharmacyName"`
	PharmacyLocation string  `db:"pharmacy_location" json:"pharmacyLocation"`
	Available        bool    `db:"-" json:"available"`
	ExpiryDate       string  `db:"expiry_date" json:"expiryDate"`
}

// searchMedicines finds records across all pharmacies whose name contains the
// query, case-insensitively, joined with the owning pharmacy.
func (h *Handler) searchMedicines(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		respondError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	like := "%" + strings.ToLower(query) + "%"
	results := []medicineSearchResult{}
	err := h.db.Select(&results, `SELECT m.id, m.name, m.category, m.quantity, m.price, m.expiry_date,
            p.name AS pharmacy_name, p.location AS pharmacy_location
        FROM medicines m
        JOIN pharmacies p ON p.id = m.pharmacy_id
        WHERE LOWER(m.name) LIKE ?`, like)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search medicines")
		return
	}
	for i := range results {
		results[i].Available = results[i].Quantity > 0
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"count":     len(results),
		"medicines": results,
	})
}

// pharmacyMedicines lists every record owned by a pharmacy. An unknown
// pharmacy id yields an empty list, matching the patient UI's probing.
func (h *Handler) pharmacyMedicines(w http.ResponseWriter, r *http.Request) {
	pharmacyID := chi.URLParam(r, "pharmacyID")

	medicines := []domain.Medicine{}
	if err := h.db.Select(&medicines, `SELECT * FROM medicines WHERE pharmacy_id = ?`, pharmacyID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get pharmacy medicines")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "medicines": medicines})
}

type addMedicineRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Quantity    *int64   `json:"quantity"`
	Price       *float64 `json:"price"`
	ExpiryDate  string   `json:"expiryDate"`
	Supplier    string   `json:"supplier"`
	BatchNumber string   `json:"batchNumber"`
	PharmacyID  string   `json:"pharmacyId"`
}

func (h *Handler) addMedicine(w http.ResponseWriter, r *http.Request) {
	var req addMedicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch {
	case strings.TrimSpace(req.Name) == "":
		respondError(w, http.StatusBadRequest, "name is required")
		return
	case !domain.ValidCategory(req.Category):
		respondError(w, http.StatusBadRequest, "category must be one of: "+strings.Join(domain.MedicineCategories, ", "))
		return
	case req.Quantity == nil || *req.Quantity < 0:
		respondError(w, http.StatusBadRequest, "quantity must be a non-negative integer")
		return
	case req.Price == nil || *req.Price < 0:
		respondError(w, http.StatusBadRequest, "price must be non-negative")
		return
	case strings.TrimSpace(req.Supplier) == "":
		respondError(w, http.StatusBadRequest, "supplier is required")
		return
	case strings.TrimSpace(req.BatchNumber) == "":
		respondError(w, http.StatusBadRequest, "batchNumber is required")
		return
	case strings.TrimSpace(req.PharmacyID) == "":
		respondError(w, http.StatusBadRequest, "pharmacyId is required")
		return
	}
	expiry, ok := parseDate(req.ExpiryDate)
	if !ok {
		respondError(w, http.StatusBadRequest, "expiryDate must be a valid date (YYYY-MM-DD)")
		return
	}

	now := nowStamp()
	medicine := domain.Medicine{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Quantity:    *req.Quantity,
		Price:       *req.Price,
		ExpiryDate:  expiry,
		Supplier:    req.Supplier,
		BatchNumber: req.BatchNumber,
		PharmacyID:  req.PharmacyID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := h.db.NamedExec(`INSERT INTO medicines (id, name, category, quantity, price, expiry_date, supplier, batch_number, pharmacy_id, created_at, updated_at)
        VALUES (:id, :name, :category, :quantity, :price, :expiry_date, :supplier, :batch_number, :pharmacy_id, :created_at, :updated_at)`, medicine); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to add medicine")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"message":  "Medicine added successfully",
		"medicine": medicine,
	})
}

// updateMedicineQuantity overwrites the quantity and refreshes updated_at.
// Last writer wins; no compare-and-swap is attempted.
func (h *Handler) updateMedicineQuantity(w http.ResponseWriter, r *http.Request) {
	medicineID := chi.URLParam(r, "medicineID")

	var payload struct {
		Quantity *int64 `json:"quantity"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Quantity == nil || *payload.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "quantity must be a non-negative integer")
		return
	}

	var medicine domain.Medicine
	if err := h.db.Get(&medicine, `SELECT * FROM medicines WHERE id = ?`, medicineID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Medicine not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to update medicine")
		return
	}

	medicine.Quantity = *payload.Quantity
	medicine.UpdatedAt = nowStamp()
	if _, err := h.db.Exec(`UPDATE medicines SET quantity = ?, updated_at = ? WHERE id = ?`,
		medicine.Quantity, medicine.UpdatedAt, medicineID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update medicine")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Medicine quantity updated",
		"medicine": medicine,
	})
}

type restockRequestBody struct {
	MedicineID string `json:"medicineId"`
	PharmacyID string `json:"pharmacyId"`
	PatientID  string `json:"patientId"`
}

// requestRestock resolves the medicine and its pharmacy, then publishes a
// fire-and-forget notification. Nothing is persisted and no delivery is
// guaranteed; the request never leaves the "pending" status.
func (h *Handler) requestRestock(w http.ResponseWriter, r *http.Request) {
	var req restockRequestBody
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var resolved struct {
		PharmacyID   string `db:"pharmacy_id"`
		PharmacyName string `db:"pharmacy_name"`
	}
	err := h.db.Get(&resolved, `SELECT p.id AS pharmacy_id, p.name AS pharmacy_name
        FROM medicines m
        JOIN pharmacies p ON p.id = m.pharmacy_id
        WHERE m.id = ?`, req.MedicineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "Medicine not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to send restock request")
		return
	}

	restock := domain.RestockRequest{
		MedicineID:  req.MedicineID,
		PharmacyID:  resolved.PharmacyID,
		PatientID:   req.PatientID,
		RequestDate: time.Now().UTC(),
		Status:      "pending",
	}
	h.bus.Publish(TopicRestockRequested, restock, resolved.PharmacyName)

	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Restock request sent to %s", resolved.PharmacyName),
	})
}

func (h *Handler) logRestockRequest(req domain.RestockRequest, pharmacyName string) {
	h.log.Info().
		Str("medicineId", req.MedicineID).
		Str("pharmacyId", req.PharmacyID).
		Str("pharmacy", pharmacyName).
		Str("patientId", req.PatientID).
		Time("requestDate", req.RequestDate).
		Str("status", req.Status).
		Msg("restock request")
}
