// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"

	"github.com/spend-smart/backend/internal/application/adapter"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// DefaultExtractionTimeout bounds a single call to the model.
const DefaultExtractionTimeout = 45 * time.Second

// GeminiConfig configures the Gemini extraction client.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

type generateFunc func(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)

// GeminiExtractionClient implements adapter.ExtractionClient using Google Gemini.
// It makes exactly one call per Extract; retry decisions belong to the caller.
type GeminiExtractionClient struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	generate  generateFunc
	logger    *slog.Logger
}

var _ adapter.ExtractionClient = (*GeminiExtractionClient)(nil)

// NewGeminiExtractionClient creates a client bound to the configured model.
func NewGeminiExtractionClient(ctx context.Context, cfg GeminiConfig) (*GeminiExtractionClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.ResponseMIMEType = "application/json"

	c := newGeminiExtractionClient(cfg.Model, cfg.Timeout, model.GenerateContent)
	c.client = client
	return c, nil
}

func newGeminiExtractionClient(modelName string, timeout time.Duration, generate generateFunc) *GeminiExtractionClient {
	if timeout <= 0 {
		timeout = DefaultExtractionTimeout
	}
	return &GeminiExtractionClient{
		modelName: modelName,
		timeout:   timeout,
		generate:  generate,
		logger:    slog.Default().With("component", "gemini_extraction"),
	}
}

// Close releases the underlying connection.
func (c *GeminiExtractionClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Extract sends the prompt (and image, if any) and returns the unwrapped JSON text.
func (c *GeminiExtractionClient) Extract(ctx context.Context, req adapter.ExtractionRequest) (*adapter.RawExtraction, error) {
	prompt, err := buildPrompt(req)
	if err != nil {
		return nil, err
	}

	parts := []genai.Part{genai.Text(prompt)}
	if req.Kind == adapter.PromptReceiptToItems {
		if len(req.Image) == 0 {
			return nil, fmt.Errorf("receipt extraction requires an image")
		}
		parts = append(parts, genai.Blob{MIMEType: req.ImageMIMEType, Data: req.Image})
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.generate(callCtx, parts...)
	if err != nil {
		extErr := classifyError(err)
		c.logger.Warn("extraction call failed",
			"kind", string(req.Kind),
			"error_kind", string(extErr.Kind),
			"elapsed", time.Since(start),
			"error", err)
		return nil, extErr
	}

	text := responseText(resp)
	if text == "" {
		return nil, domainerror.NewMalformedExtractionError(domainerror.ErrCodeExtractionMalformed,
			"extraction response has no text", "", domainerror.ErrExtractionMalformed)
	}

	cleaned := stripWrapping(text)
	if !strings.HasPrefix(cleaned, "{") || !json.Valid([]byte(cleaned)) {
		return nil, domainerror.NewMalformedExtractionError(domainerror.ErrCodeExtractionMalformed,
			"extraction response is not a JSON object", text, domainerror.ErrExtractionMalformed)
	}

	c.logger.Debug("extraction call succeeded", "kind", string(req.Kind), "elapsed", time.Since(start))
	return &adapter.RawExtraction{Text: cleaned, Model: c.modelName}, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

// classifyError maps a failed call to transport, provider or malformed.
func classifyError(err error) *domainerror.ExtractionError {
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerror.NewExtractionError(domainerror.ExtractionErrorTransport,
			domainerror.ErrCodeExtractionTimeout, "extraction call timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return domainerror.NewExtractionError(domainerror.ExtractionErrorTransport,
			domainerror.ErrCodeExtractionTransport, "extraction call canceled", err)
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return domainerror.NewExtractionError(domainerror.ExtractionErrorMalformed,
			domainerror.ErrCodeExtractionRejected, "extraction request was blocked by the provider", err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return domainerror.NewExtractionError(domainerror.ExtractionErrorProvider,
			domainerror.ErrCodeExtractionProvider, fmt.Sprintf("extraction provider returned %d", apiErr.Code), err)
	}

	var grpcErr *apierror.APIError
	if errors.As(err, &grpcErr) {
		if st := grpcErr.GRPCStatus(); st != nil {
			switch st.Code() {
			case codes.Unavailable, codes.DeadlineExceeded:
				return domainerror.NewExtractionError(domainerror.ExtractionErrorTransport,
					domainerror.ErrCodeExtractionTransport, "extraction service unavailable", err)
			}
		}
		return domainerror.NewExtractionError(domainerror.ExtractionErrorProvider,
			domainerror.ErrCodeExtractionProvider, "extraction provider returned an error", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domainerror.NewExtractionError(domainerror.ExtractionErrorTransport,
			domainerror.ErrCodeExtractionTransport, "extraction service unreachable", err)
	}

	return domainerror.NewExtractionError(domainerror.ExtractionErrorTransport,
		domainerror.ErrCodeExtractionTransport, "extraction call failed", err)
}
