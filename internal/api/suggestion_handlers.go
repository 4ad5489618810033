package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/service"
)

func (s *Server) registerSuggestionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "requestSuggestions",
		Method:        http.MethodPost,
		Path:          "/api/v1/suggestions",
		Summary:       "Request suggestions",
		Description:   "Starts a deferred suggestion run over the current wardrobe. The result is broadcast as a suggestions.ready event.",
		Tags:          []string{"Suggestions"},
		DefaultStatus: http.StatusAccepted,
	}, s.handleRequestSuggestions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSuggestions",
		Method:      http.MethodGet,
		Path:        "/api/v1/suggestions",
		Summary:     "Get suggestions",
		Description: "Returns whether a run is pending and the latest completed result",
		Tags:        []string{"Suggestions"},
	}, s.handleGetSuggestions)
}

// RequestSuggestionsResponse reports whether a new run was scheduled.
type RequestSuggestionsResponse struct {
	Started bool `json:"started" doc:"False when a run was already pending"`
	Pending bool `json:"pending" doc:"Whether a run is pending"`
}

// RequestSuggestionsOutput wraps the response for Huma.
type RequestSuggestionsOutput struct {
	Body RequestSuggestionsResponse
}

// SuggestionStatusOutput wraps the suggestion status for Huma.
type SuggestionStatusOutput struct {
	Body service.SuggestionStatus
}

func (s *Server) handleRequestSuggestions(_ context.Context, _ *struct{}) (*RequestSuggestionsOutput, error) {
	started := s.services.Suggestions.Request()
	return &RequestSuggestionsOutput{
		Body: RequestSuggestionsResponse{
			Started: started,
			Pending: s.services.Suggestions.Status().Pending,
		},
	}, nil
}

func (s *Server) handleGetSuggestions(_ context.Context, _ *struct{}) (*SuggestionStatusOutput, error) {
	return &SuggestionStatusOutput{Body: s.services.Suggestions.Status()}, nil
}
