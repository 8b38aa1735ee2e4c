// Package ai adapts the external Gemini vision model for document field
// extraction. The adapter is advisory only: its output pre-fills the guest
// registration form and is never persisted without human review.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/chamathdew/hiruayurvedaresorts/internal/core/ports"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const passportPrompt = `You are reading a passport photo page. Extract the following fields and reply with a strict JSON object only, no prose and no markdown: {"fullName": "", "dateOfBirth": "YYYY-MM-DD", "nationality": "", "passportNumber": "", "visaExpiryDate": "YYYY-MM-DD", "email": "", "contactNumber": "", "remark": ""}. Leave a field empty when it cannot be read.`

const handwrittenPrompt = `You are reading a handwritten guest declaration form. Extract the following fields and reply with a strict JSON object only, no prose and no markdown: {"fullName": "", "dateOfBirth": "YYYY-MM-DD", "nationality": "", "passportNumber": "", "visaExpiryDate": "YYYY-MM-DD", "email": "", "contactNumber": "", "remark": ""}. Put anything notable that does not fit a field into remark. Leave a field empty when it cannot be read.`

// GeminiExtractor implements ports.DocumentExtractor against the Gemini
// generateContent REST endpoint.
type GeminiExtractor struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

// Option customises a GeminiExtractor.
type Option func(*GeminiExtractor)

// WithBaseURL overrides the API endpoint. Intended for tests.
func WithBaseURL(url string) Option {
	return func(g *GeminiExtractor) { g.baseURL = strings.TrimRight(url, "/") }
}

// NewGeminiExtractor builds the adapter. The call is wrapped in a circuit
// breaker since the model endpoint is the only unbounded-latency dependency
// in the system; timeout bounds each individual request.
func NewGeminiExtractor(apiKey, model string, timeout time.Duration, log zerolog.Logger, opts ...Option) *GeminiExtractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	g := &GeminiExtractor{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "Gemini",
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("circuit breaker state change")
		},
	})

	for _, opt := range opts {
		opt(g)
	}
	return g
}

// --- Gemini wire types ---

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents         []content `json:"contents"`
	GenerationConfig struct {
		Temperature float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Extract submits the document with a fixed field-extraction prompt and parses
// the model's reply. Missing credentials fail fast before any network I/O.
func (g *GeminiExtractor) Extract(ctx context.Context, data []byte, mimeType, docType string) (*ports.ExtractedFields, error) {
	if g.apiKey == "" {
		return nil, ports.ErrExtractorNotConfigured
	}

	prompt := passportPrompt
	if docType != ports.DocTypePassport {
		prompt = handwrittenPrompt
	}

	reply, err := g.generate(ctx, prompt, data, mimeType)
	if err != nil {
		return nil, err
	}

	fields := &ports.ExtractedFields{}
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), fields); err != nil {
		g.log.Warn().Err(err).Str("doc_type", docType).Msg("model reply was not valid JSON")
		return nil, fmt.Errorf("%w: reply is not the expected JSON shape", ports.ErrExtractionFailed)
	}
	return fields, nil
}

func (g *GeminiExtractor) generate(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []contentPart{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(data),
				}},
			},
		}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)

	result, err := g.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", g.apiKey)

		resp, err := g.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("call model: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("read model reply: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("model returned status %d", resp.StatusCode)
		}
		return body, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ports.ErrExtractionFailed, err)
	}

	var gr generateResponse
	if err := json.Unmarshal(result.([]byte), &gr); err != nil {
		return "", fmt.Errorf("%w: decode reply envelope", ports.ErrExtractionFailed)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty reply", ports.ErrExtractionFailed)
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}

// stripCodeFences removes markdown code-fence markers the model sometimes
// wraps around its JSON reply, with or without a language tag.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 && !strings.HasPrefix(s, "{") {
		// drop the language tag line (e.g. "json")
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
