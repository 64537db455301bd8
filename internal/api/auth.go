package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sehatsaathi/backend/domain"
)

type ctxKey string

const (
	ctxUserID     ctxKey = "userID"
	ctxRole       ctxKey = "role"
	ctxPharmacyID ctxKey = "pharmacyID"
)

type authClaims struct {
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	PharmacyID string `json:"pharmacy_id,omitempty"`
	jwt.RegisteredClaims
}

func (h *Handler) generateToken(userID, role, pharmacyID string) (string, error) {
	claims := authClaims{
		UserID:     userID,
		Role:       role,
		PharmacyID: pharmacyID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.secret))
}

// authMiddleware resolves the bearer token into an explicit per-request
// session: userID, role, and (for pharmacists) the owned pharmacy.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			respondError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		tokenString := strings.TrimSpace(header[len("Bearer "):])
		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.secret), nil
		})
		if err != nil || !token.Valid {
			respondError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		claims, ok := token.Claims.(*authClaims)
		if !ok {
			respondError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, claims.UserID)
		ctx = context.WithValue(ctx, ctxRole, claims.Role)
		ctx = context.WithValue(ctx, ctxPharmacyID, claims.PharmacyID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	role := r.Context().Value(ctxRole)
	if role == nil {
		respondError(w, http.StatusUnauthorized, "missing role")
		return false
	}
	current := role.(string)
	for _, allowedRole := range allowed {
		if current == allowedRole {
			return true
		}
	}
	respondError(w, http.StatusForbidden, "insufficient permissions")
	return false
}

func userIDFromContext(r *http.Request) string {
	if val := r.Context().Value(ctxUserID); val != nil {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

func pharmacyIDFromContext(r *http.Request) string {
	if val := r.Context().Value(ctxPharmacyID); val != nil {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return ""
}

// Auth handlers

type registerRequest struct {
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	Password         string  `json:"password"`
	Role             string  `json:"role"`
	PharmacyName     string  `json:"pharmacyName,omitempty"`
	PharmacyAddress  string  `json:"pharmacyAddress,omitempty"`
	PharmacyLocation string  `json:"pharmacyLocation,omitempty"`
	Specialty        string  `json:"specialty,omitempty"`
	Experience       string  `json:"experience,omitempty"`
	Location         string  `json:"location,omitempty"`
	ConsultationFee  float64 `json:"consultationFee,omitempty"`
}

type authResponse struct {
	Success  bool             `json:"success"`
	Token    string           `json:"token"`
	User     domain.User      `json:"user"`
	Pharmacy *domain.Pharmacy `json:"pharmacy,omitempty"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		respondError(w, http.StatusBadRequest, "username, email, password and role are required")
		return
	}
	if req.Role != domain.RolePatient && req.Role != domain.RoleDoctor && req.Role != domain.RolePharmacist {
		respondError(w, http.StatusBadRequest, "role must be patient, doctor or pharmacist")
		return
	}
	if req.Role == domain.RolePharmacist && strings.TrimSpace(req.PharmacyName) == "" {
		respondError(w, http.StatusBadRequest, "pharmacyName is required for pharmacists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start registration")
		return
	}

	userID := uuid.NewString()
	email := strings.ToLower(req.Email)
	now := nowStamp()

	if _, err := tx.Exec(`INSERT INTO users (id, username, email, password, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, req.Username, email, hashed, req.Role, now); err != nil {
		_ = tx.Rollback()
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "unique constraint") {
			respondError(w, http.StatusConflict, "email already exists")
		} else {
			respondError(w, http.StatusInternalServerError, "db error: "+err.Error())
		}
		return
	}

	var pharmacy *domain.Pharmacy
	var pharmacyID string
	switch req.Role {
	case domain.RolePharmacist:
		pharmacyID = uuid.NewString()
		if _, err := tx.Exec(`INSERT INTO pharmacies (id, name, address, location, owner_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			pharmacyID, req.PharmacyName, req.PharmacyAddress, req.PharmacyLocation, userID, now); err != nil {
			_ = tx.Rollback()
			respondError(w, http.StatusInternalServerError, "unable to create pharmacy for pharmacist")
			return
		}
		if _, err := tx.Exec(`UPDATE users SET pharmacy_id = ? WHERE id = ?`, pharmacyID, userID); err != nil {
			_ = tx.Rollback()
			respondError(w, http.StatusInternalServerError, "unable to link pharmacist to pharmacy")
			return
		}
		pharmacy = &domain.Pharmacy{
			ID:        pharmacyID,
			Name:      req.PharmacyName,
			Address:   req.PharmacyAddress,
			Location:  req.PharmacyLocation,
			OwnerID:   &userID,
			CreatedAt: now,
		}
	case domain.RoleDoctor:
		if _, err := tx.Exec(`INSERT INTO doctor_profiles (user_id, specialty, experience, location, consultation_fee) VALUES (?, ?, ?, ?, ?)`,
			userID, req.Specialty, req.Experience, req.Location, req.ConsultationFee); err != nil {
			_ = tx.Rollback()
			respondError(w, http.StatusInternalServerError, "unable to create doctor profile")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to complete registration")
		return
	}

	token, err := h.generateToken(userID, req.Role, pharmacyID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	user := domain.User{ID: userID, Username: req.Username, Email: email, Role: req.Role, CreatedAt: now}
	if pharmacyID != "" {
		user.PharmacyID = &pharmacyID
	}
	respondJSON(w, http.StatusCreated, authResponse{Success: true, Token: token, User: user, Pharmacy: pharmacy})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var user domain.User
	err := h.db.Get(&user, `SELECT id, username, email, password, role, pharmacy_id, created_at FROM users WHERE email = ?`, strings.ToLower(req.Email))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	pharmacyID := ""
	if user.PharmacyID != nil {
		pharmacyID = *user.PharmacyID
	}
	token, err := h.generateToken(user.ID, user.Role, pharmacyID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to generate token")
		return
	}

	user.Password = ""
	respondJSON(w, http.StatusOK, authResponse{Success: true, Token: token, User: user})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		NewPassword string `json:"newPassword"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.NewPassword == "" {
		respondError(w, http.StatusBadRequest, "newPassword is required")
		return
	}
	uid := userIDFromContext(r)
	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}
	if _, err := h.db.Exec(`UPDATE users SET password = ? WHERE id = ?`, hashed, uid); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update password")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "password updated"})
}
