package analysis

import (
	"encoding/json"
	"strings"
)

// StandardDisclaimer is injected whenever the model omits one.
const StandardDisclaimer = "This analysis is for informational purposes only and should not replace professional medical advice. Always consult with a healthcare provider for proper diagnosis and treatment."

const shortDisclaimer = "This analysis is for informational purposes only and should not replace professional medical advice."

// ExtractJSON returns the outermost brace-delimited object in raw, if any.
// Models routinely wrap their JSON in prose or markdown fences.
func ExtractJSON(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// Normalize attempts to turn the model's raw text into a Result. It reports
// false when no parseable object could be located; callers then substitute a
// fallback. A parsed result always carries a non-empty disclaimer.
func Normalize(raw string) (Result, bool) {
	blob, ok := ExtractJSON(raw)
	if !ok {
		return Result{}, false
	}
	var res Result
	if err := json.Unmarshal([]byte(blob), &res); err != nil {
		return Result{}, false
	}
	if res.Disclaimer == "" {
		res.Disclaimer = StandardDisclaimer
	}
	return res, true
}

// TextFallback builds a Result from unparseable model text, carrying a
// truncated excerpt so the caller still sees what came back.
func TextFallback(raw string) Result {
	excerpt := raw
	if runes := []rune(raw); len(runes) > 200 {
		excerpt = string(runes[:200]) + "..."
	}
	return Result{
		PossibleConditions: []Condition{
			{
				Name:            "Analysis Available",
				Description:     excerpt,
				Severity:        LevelMedium,
				MatchPercentage: "N/A",
			},
		},
		Recommendations: Recommendations{
			Immediate: []string{"Consult with a healthcare provider for proper diagnosis"},
			General:   []string{"Monitor symptoms and keep a symptom diary"},
			FollowUp:  []string{"Schedule an appointment with your doctor within 1-2 days"},
		},
		UrgencyLevel:   LevelMedium,
		UrgencyMessage: "Please consult with a healthcare provider for proper evaluation.",
		RedFlags: []string{
			"Severe or worsening symptoms",
			"Difficulty breathing",
			"Chest pain",
			"High fever",
		},
		Disclaimer: shortDisclaimer,
	}
}

// ErrorFallback is the fully fixed Result returned when the upstream call
// fails outright.
func ErrorFallback() Result {
	return Result{
		PossibleConditions: []Condition{
			{
				Name:            "Unable to Complete Analysis",
				Description:     "We're currently unable to process your symptoms. Please consult with a healthcare provider.",
				Severity:        LevelMedium,
				MatchPercentage: "N/A",
			},
		},
		Recommendations: Recommendations{
			Immediate: []string{"Consult with a healthcare provider"},
			General:   []string{"Monitor your symptoms", "Rest and stay hydrated"},
			FollowUp:  []string{"Schedule a medical appointment if symptoms persist or worsen"},
		},
		UrgencyLevel:   LevelMedium,
		UrgencyMessage: "Please consult with a healthcare provider for proper evaluation of your symptoms.",
		RedFlags: []string{
			"Severe or worsening symptoms",
			"Difficulty breathing",
			"Chest pain",
			"High fever",
			"Loss of consciousness",
		},
		Disclaimer: shortDisclaimer,
	}
}
