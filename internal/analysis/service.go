package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrEmptyInput is the only error the service surfaces; everything downstream
// of input validation is fail-open.
var ErrEmptyInput = errors.New("input is required")

// Service runs symptom and report analysis against a Generator, normalizing
// whatever comes back into a fixed-shape Result.
type Service struct {
	gen     Generator
	timeout time.Duration
	log     zerolog.Logger
}

// NewService constructs a Service. gen may be nil (no API key configured), in
// which case every request resolves to the error fallback.
func NewService(gen Generator, timeout time.Duration, log zerolog.Logger) *Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Service{gen: gen, timeout: timeout, log: log}
}

// AnalyzeSymptoms analyzes a free-text symptom description. It returns an
// error only for blank input; upstream failures resolve to a fallback Outcome.
func (s *Service) AnalyzeSymptoms(ctx context.Context, symptoms string) (Outcome, error) {
	if strings.TrimSpace(symptoms) == "" {
		return Outcome{}, ErrEmptyInput
	}
	return s.run(ctx, func(cctx context.Context) (string, error) {
		return s.gen.Generate(cctx, BuildSymptomPrompt(symptoms))
	}), nil
}

// AnalyzeReport analyzes an uploaded report document or image.
func (s *Service) AnalyzeReport(ctx context.Context, mimeType string, data []byte) (Outcome, error) {
	if len(data) == 0 {
		return Outcome{}, ErrEmptyInput
	}
	return s.run(ctx, func(cctx context.Context) (string, error) {
		return s.gen.GenerateWithFile(cctx, BuildReportPrompt(), mimeType, data)
	}), nil
}

func (s *Service) run(ctx context.Context, call func(context.Context) (string, error)) Outcome {
	if s.gen == nil {
		s.log.Warn().Msg("no generator configured, returning fallback analysis")
		return Outcome{Analysis: ErrorFallback(), Source: SourceErrored}
	}
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := call(cctx)
	if err != nil {
		s.log.Error().Err(err).Msg("analysis upstream failure")
		return Outcome{Analysis: ErrorFallback(), Source: SourceErrored}
	}
	if res, ok := Normalize(raw); ok {
		return Outcome{Analysis: res, Source: SourceParsed}
	}
	return Outcome{Analysis: TextFallback(raw), Source: SourceFallback}
}
