package pipeline

import (
	"log/slog"

	"librarian/internal/catalog"
	"librarian/internal/config"
	"librarian/internal/extract"
	"librarian/internal/remote"
	"librarian/internal/rules"
	"librarian/internal/services/classify"
)

// Event reports the disposition of one job for presentation purposes.
// Events are observational only; the catalog is the source of truth.
type Event struct {
	RemoteID string
	FileName string
	Success  bool
	Error    string
	Targets  []string
}

// Pipeline owns the batch flow. The rule set and configuration are
// immutable for the lifetime of a batch; the remote store and classifier
// must tolerate concurrent calls from all workers.
type Pipeline struct {
	cfg        *config.Config
	store      *catalog.Store
	remote     remote.Store
	classifier classify.Classifier
	rules      *rules.Set
	extract    extract.Func
	logger     *slog.Logger
	onEvent    func(Event)
}

// Option customizes pipeline construction.
type Option func(*Pipeline)

// WithExtractor replaces the PDF text extractor (useful for tests).
func WithExtractor(fn extract.Func) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.extract = fn
		}
	}
}

// WithEventHandler registers a callback invoked once per collected result.
// The callback runs on the collector goroutine and must not block.
func WithEventHandler(fn func(Event)) Option {
	return func(p *Pipeline) {
		p.onEvent = fn
	}
}

// New assembles a pipeline from its collaborators.
func New(
	cfg *config.Config,
	store *catalog.Store,
	remoteStore remote.Store,
	classifier classify.Classifier,
	set *rules.Set,
	logger *slog.Logger,
	opts ...Option,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		cfg:        cfg,
		store:      store,
		remote:     remoteStore,
		classifier: classifier,
		rules:      set,
		extract:    extract.Text,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) emit(event Event) {
	if p.onEvent != nil {
		p.onEvent(event)
	}
}
