package mock

import (
	"context"
	"sync"

	"github.com/spend-smart/backend/internal/application/adapter"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// Extractor answers extraction requests with scripted responses, one per prompt kind.
type Extractor struct {
	mu        sync.Mutex
	responses map[adapter.PromptKind]string
	failures  map[adapter.PromptKind]error
	requests  []adapter.ExtractionRequest
}

var _ adapter.ExtractionClient = (*Extractor)(nil)

func NewExtractor() *Extractor {
	e := &Extractor{}
	e.Reset()
	return e
}

// Respond scripts the JSON text returned for kind.
func (e *Extractor) Respond(kind adapter.PromptKind, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses[kind] = text
	delete(e.failures, kind)
}

// Fail makes every request of kind fail as if the service were down.
func (e *Extractor) Fail(kind adapter.PromptKind) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failures[kind] = domainerror.NewExtractionError(
		domainerror.ExtractionErrorTransport, domainerror.ErrCodeExtractionTransport,
		"extraction service unreachable", domainerror.ErrExtractionTransport,
	)
}

func (e *Extractor) Extract(ctx context.Context, req adapter.ExtractionRequest) (*adapter.RawExtraction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.requests = append(e.requests, req)
	if err, ok := e.failures[req.Kind]; ok {
		return nil, err
	}
	text, ok := e.responses[req.Kind]
	if !ok {
		return nil, domainerror.NewExtractionError(
			domainerror.ExtractionErrorProvider, domainerror.ErrCodeExtractionRejected,
			"no scripted response", domainerror.ErrExtractionProvider,
		)
	}
	return &adapter.RawExtraction{Text: text, Model: "scripted"}, nil
}

// Requests returns how many requests of kind were received.
func (e *Extractor) Requests(kind adapter.PromptKind) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, req := range e.requests {
		if req.Kind == kind {
			n++
		}
	}
	return n
}

func (e *Extractor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.responses = make(map[adapter.PromptKind]string)
	e.failures = make(map[adapter.PromptKind]error)
	e.requests = nil
}
