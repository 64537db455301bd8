package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"sehatsaathi/backend/internal/analysis"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	db       *sqlx.DB
	secret   string
	analyzer *analysis.Service
	bus      EventBus.Bus
	log      zerolog.Logger
}

// New constructs a Handler and wires the restock notification subscriber.
func New(db *sqlx.DB, secret string, analyzer *analysis.Service, log zerolog.Logger) *Handler {
	h := &Handler{
		db:       db,
		secret:   secret,
		analyzer: analyzer,
		bus:      EventBus.New(),
		log:      log,
	}
	_ = h.bus.Subscribe(TopicRestockRequested, h.logRestockRequest)
	return h
}

// Bus exposes the notification bus so additional subscribers can attach.
func (h *Handler) Bus() EventBus.Bus {
	return h.bus
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"}, // Change "*" to a list of allowed domains (e.g., ["http://localhost:3000"])
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	r.Use(middleware.RequestID)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Group(func(protected chi.Router) {
			protected.Use(h.authMiddleware)
			protected.Post("/reset-password", h.resetPassword)
		})
	})

	// The patient-facing demo surface carries no auth, matching the original
	// application's demo-mode bypass.
	r.Route("/medicines", func(r chi.Router) {
		r.Get("/search", h.searchMedicines)
		r.Post("/request-restock", h.requestRestock)
		r.Get("/pharmacy/{pharmacyID}", h.pharmacyMedicines)
		r.Post("/add", h.addMedicine)
		r.Put("/{medicineID}/quantity", h.updateMedicineQuantity)
	})

	r.Post("/analyze-symptoms", h.analyzeSymptoms)
	r.Post("/analyze-report", h.analyzeReport)

	r.Get("/doctors", h.listDoctors)
	r.Get("/doctors/{doctorID}", h.getDoctor)

	r.Group(func(pr chi.Router) {
		pr.Use(h.authMiddleware)

		pr.Route("/appointments", func(r chi.Router) {
			r.Post("/", h.bookAppointment)
			r.Get("/", h.listAppointments)
			r.Delete("/{appointmentID}", h.cancelAppointment)
		})

		pr.Route("/vitals", func(r chi.Router) {
			r.Post("/", h.recordVitals)
			r.Get("/", h.listVitals)
		})

		pr.Route("/approvals", func(r chi.Router) {
			r.Post("/", h.createApproval)
			r.Get("/", h.listApprovals)
			r.Put("/{approvalID}", h.decideApproval)
		})

		pr.Route("/pharmacies", func(r chi.Router) {
			r.Post("/", h.createPharmacy)
			r.Get("/", h.listPharmacies)
			r.Put("/{pharmacyID}", h.updatePharmacy)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Helpers

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"success": false, "message": message})
}

// parseDate accepts a calendar date either bare (2006-01-02) or as a full
// RFC 3339 timestamp, returning the date part.
func parseDate(value string) (string, bool) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.Format("2006-01-02"), true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format("2006-01-02"), true
	}
	return "", false
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
