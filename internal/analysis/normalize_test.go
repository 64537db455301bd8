package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"bare object", `{"a":1}`, `{"a":1}`, true},
		{"markdown fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"prose around", "Here is my assessment:\n{\"a\":1}\nHope that helps!", `{"a":1}`, true},
		{"no object", "I cannot provide a diagnosis.", "", false},
		{"close before open", "} nothing {", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeParsesModelResponse(t *testing.T) {
	raw := "Sure, here is the analysis:\n" + `{
        "possibleConditions": [
            {"name": "Common Cold", "description": "Viral infection", "severity": "low", "matchPercentage": "85%"}
        ],
        "recommendations": {"immediate": ["Rest"], "general": ["Hydrate"], "followUp": ["See a doctor if it persists"]},
        "urgencyLevel": "low",
        "urgencyMessage": "No urgent care needed.",
        "redFlags": ["High fever"],
        "disclaimer": "Informational only."
    }`

	res, ok := Normalize(raw)
	require.True(t, ok)
	require.Len(t, res.PossibleConditions, 1)
	assert.Equal(t, "Common Cold", res.PossibleConditions[0].Name)
	assert.Equal(t, Percent("85%"), res.PossibleConditions[0].MatchPercentage)
	assert.Equal(t, "low", res.UrgencyLevel)
	assert.Equal(t, "Informational only.", res.Disclaimer)
}

func TestNormalizeInjectsDisclaimer(t *testing.T) {
	res, ok := Normalize(`{"possibleConditions": [], "urgencyLevel": "low"}`)
	require.True(t, ok)
	assert.Equal(t, StandardDisclaimer, res.Disclaimer)
}

func TestNormalizeNumericMatchPercentage(t *testing.T) {
	res, ok := Normalize(`{"possibleConditions": [{"name": "Flu", "matchPercentage": 72}]}`)
	require.True(t, ok)
	assert.Equal(t, Percent("72"), res.PossibleConditions[0].MatchPercentage)
}

func TestNormalizeRejectsMalformed(t *testing.T) {
	_, ok := Normalize(`{"possibleConditions": [unquoted]}`)
	assert.False(t, ok)

	_, ok = Normalize("plain refusal text with no braces")
	assert.False(t, ok)
}

func TestTextFallbackTruncatesExcerpt(t *testing.T) {
	long := strings.Repeat("á", 500)
	res := TextFallback(long)

	require.Len(t, res.PossibleConditions, 1)
	cond := res.PossibleConditions[0]
	assert.Equal(t, "Analysis Available", cond.Name)
	assert.Equal(t, string([]rune(long)[:200])+"...", cond.Description)
	assert.Equal(t, LevelMedium, cond.Severity)
	assert.Equal(t, LevelMedium, res.UrgencyLevel)
	assert.NotEmpty(t, res.Disclaimer)
	assert.NotEmpty(t, res.RedFlags)
}

func TestTextFallbackShortTextKeptWhole(t *testing.T) {
	res := TextFallback("short answer")
	assert.Equal(t, "short answer", res.PossibleConditions[0].Description)
}

func TestErrorFallbackShape(t *testing.T) {
	res := ErrorFallback()

	require.Len(t, res.PossibleConditions, 1)
	assert.Equal(t, "Unable to Complete Analysis", res.PossibleConditions[0].Name)
	assert.Equal(t, LevelMedium, res.UrgencyLevel)
	assert.NotEmpty(t, res.UrgencyMessage)
	assert.NotEmpty(t, res.Disclaimer)
	assert.Contains(t, res.RedFlags, "Loss of consciousness")
}
