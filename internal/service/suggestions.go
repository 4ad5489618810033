package service

import (
	"log/slog"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/sse"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
	"github.com/wardrobeapp/wardrobe-server/internal/suggest"
)

// SuggestionStatus reports the state of the deferred suggestion run.
type SuggestionStatus struct {
	Pending bool            `json:"pending"`
	Latest  *suggest.Result `json:"latest,omitempty"`
}

// SuggestionService runs the suggestion engine over the current wardrobe
// after a short delay and broadcasts the result.
type SuggestionService struct {
	runner *suggest.Runner
	items  *store.ItemStore
	events EventEmitter
	logger *slog.Logger
}

// NewSuggestionService creates a suggestion service. events may be nil.
func NewSuggestionService(
	items *store.ItemStore,
	engine *suggest.Engine,
	delay time.Duration,
	events EventEmitter,
	logger *slog.Logger,
) *SuggestionService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &SuggestionService{
		items:  items,
		events: emitterOrNoop(events),
		logger: logger,
	}
	s.runner = suggest.NewRunner(engine, delay, s.finished)
	return s
}

// Request starts a run over a snapshot of the wardrobe. It returns false when
// a run is already pending.
func (s *SuggestionService) Request() bool {
	started := s.runner.Request(s.items.List())
	if started {
		s.logger.Debug("suggestion run scheduled")
	} else {
		s.logger.Debug("suggestion run already pending")
	}
	return started
}

// Status reports whether a run is pending and the latest completed result.
func (s *SuggestionService) Status() SuggestionStatus {
	status := SuggestionStatus{Pending: s.runner.Pending()}
	if latest, ok := s.runner.Latest(); ok {
		status.Latest = &latest
	}
	return status
}

// Close stops a pending run.
func (s *SuggestionService) Close() {
	s.runner.Close()
}

func (s *SuggestionService) finished(res suggest.Result) {
	s.events.Emit(sse.NewSuggestionsReadyEvent(res.Suggestions, res.GeneratedAt))
	s.logger.Info("suggestions generated",
		"suggestions", len(res.Suggestions),
		"items", res.ItemCount,
	)
}
