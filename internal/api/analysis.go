package api

import (
	"io"
	"net/http"
	"time"

	"sehatsaathi/backend/internal/analysis"
)

// Uploaded reports larger than this are refused before hitting the model.
const maxReportBytes = 10 << 20

// analyzeSymptoms forwards a free-text symptom description to the AI service.
// Fail-open: apart from blank input, the caller always receives 200 with
// either a genuine or a fallback analysis.
func (h *Handler) analyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Symptoms string `json:"symptoms"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.analyzer.AnalyzeSymptoms(r.Context(), req.Symptoms)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Symptoms description is required")
		return
	}
	h.respondAnalysis(w, outcome)
}

// analyzeReport accepts an uploaded report document or image under the
// multipart field "report" and runs it through the same fail-open contract.
func (h *Handler) analyzeReport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReportBytes)
	file, header, err := r.FormFile("report")
	if err != nil {
		respondError(w, http.StatusBadRequest, "A report file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unable to read report file")
		return
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	outcome, err := h.analyzer.AnalyzeReport(r.Context(), mimeType, data)
	if err != nil {
		respondError(w, http.StatusBadRequest, "A report file is required")
		return
	}
	h.respondAnalysis(w, outcome)
}

func (h *Handler) respondAnalysis(w http.ResponseWriter, outcome analysis.Outcome) {
	payload := map[string]any{
		"success":   true,
		"analysis":  outcome.Analysis,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if outcome.Source == analysis.SourceErrored {
		payload["message"] = "Analysis completed with limited information. Please consult a healthcare provider."
	}
	respondJSON(w, http.StatusOK, payload)
}
