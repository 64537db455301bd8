package analysis

import "encoding/json"

// Severity / urgency levels used throughout a Result.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Percent tolerates the model emitting matchPercentage as either a quoted
// string ("85%") or a bare number (85).
type Percent string

func (p *Percent) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Percent(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = Percent(n.String())
	return nil
}

type Condition struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Severity        string  `json:"severity"`
	MatchPercentage Percent `json:"matchPercentage"`
}

type Recommendations struct {
	Immediate []string `json:"immediate"`
	General   []string `json:"general"`
	FollowUp  []string `json:"followUp"`
}

// Result is the fixed-shape analysis returned to callers regardless of what
// the model produced.
type Result struct {
	PossibleConditions []Condition     `json:"possibleConditions"`
	Recommendations    Recommendations `json:"recommendations"`
	UrgencyLevel       string          `json:"urgencyLevel"`
	UrgencyMessage     string          `json:"urgencyMessage"`
	RedFlags           []string        `json:"redFlags"`
	Disclaimer         string          `json:"disclaimer"`
}

// Source records how a Result was produced.
type Source string

const (
	// SourceParsed means the model's response carried a usable JSON object.
	SourceParsed Source = "parsed"
	// SourceFallback means the model answered but its text could not be parsed.
	SourceFallback Source = "fallback"
	// SourceErrored means the upstream call itself failed.
	SourceErrored Source = "errored"
)

// Outcome pairs a Result with its provenance.
type Outcome struct {
	Analysis Result
	Source   Source
}
