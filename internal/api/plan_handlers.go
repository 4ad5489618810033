package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	domainerrors "github.com/wardrobeapp/wardrobe-server/internal/errors"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
)

func (s *Server) registerPlanRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPlans",
		Method:      http.MethodGet,
		Path:        "/api/v1/plans",
		Summary:     "List plans",
		Description: "Returns every planned outfit",
		Tags:        []string{"Planner"},
	}, s.handleListPlans)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deletePlan",
		Method:        http.MethodDelete,
		Path:          "/api/v1/plans/{id}",
		Summary:       "Delete plan",
		Description:   "Removes a plan by ID. Unknown IDs are ignored.",
		Tags:          []string{"Planner"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeletePlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDay",
		Method:      http.MethodGet,
		Path:        "/api/v1/days/{date}",
		Summary:     "Get day",
		Description: "Returns the outfit planned for a calendar date",
		Tags:        []string{"Planner"},
	}, s.handleGetDay)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveDay",
		Method:      http.MethodPut,
		Path:        "/api/v1/days/{date}",
		Summary:     "Save day",
		Description: "Plans an outfit for a calendar date, replacing any existing plan for that date",
		Tags:        []string{"Planner"},
	}, s.handleSaveDay)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteDay",
		Method:        http.MethodDelete,
		Path:          "/api/v1/days/{date}",
		Summary:       "Clear day",
		Description:   "Removes the outfit planned for a calendar date",
		Tags:          []string{"Planner"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteDay)

	huma.Register(s.api, huma.Operation{
		OperationID: "getWeek",
		Method:      http.MethodGet,
		Path:        "/api/v1/weeks/{date}",
		Summary:     "Get week",
		Description: "Returns Monday through Sunday of the week containing the date",
		Tags:        []string{"Planner"},
	}, s.handleGetWeek)
}

// === DTOs ===

// ListPlansResponse contains every plan.
type ListPlansResponse struct {
	Plans []domain.OutfitPlan `json:"plans" doc:"Planned outfits"`
}

// ListPlansOutput wraps the plan list for Huma.
type ListPlansOutput struct {
	Body ListPlansResponse
}

// PlanIDInput addresses one plan.
type PlanIDInput struct {
	ID string `path:"id" doc:"Plan ID"`
}

// DateInput addresses one calendar date.
type DateInput struct {
	Date string `path:"date" doc:"Date as YYYY-MM-DD or RFC 3339"`
}

// SaveDayRequest is the request body for planning a day.
type SaveDayRequest struct {
	Items []string `json:"items" doc:"Item IDs in outfit order"`
	Notes string   `json:"notes,omitempty" maxLength:"1000" doc:"Optional notes"`
}

// SaveDayInput wraps the save day request for Huma.
type SaveDayInput struct {
	Date string `path:"date" doc:"Date as YYYY-MM-DD or RFC 3339"`
	Body SaveDayRequest
}

// PlanOutput wraps a saved plan for Huma.
type PlanOutput struct {
	Body domain.OutfitPlan
}

// DayOutput wraps a day view for Huma.
type DayOutput struct {
	Body service.DayView
}

// WeekOutput wraps a week view for Huma.
type WeekOutput struct {
	Body service.WeekView
}

// === Handlers ===

func (s *Server) handleListPlans(_ context.Context, _ *struct{}) (*ListPlansOutput, error) {
	plans := s.services.Planner.Plans()
	if plans == nil {
		plans = []domain.OutfitPlan{}
	}
	return &ListPlansOutput{Body: ListPlansResponse{Plans: plans}}, nil
}

func (s *Server) handleDeletePlan(ctx context.Context, input *PlanIDInput) (*struct{}, error) {
	if err := s.services.Planner.DeletePlan(ctx, input.ID); err != nil {
		return nil, s.fail(ctx, "delete plan", err)
	}
	return nil, nil
}

func (s *Server) handleGetDay(ctx context.Context, input *DateInput) (*DayOutput, error) {
	date, err := s.parseDate(input.Date)
	if err != nil {
		return nil, s.fail(ctx, "get day", err)
	}
	view, err := s.services.Planner.PlanForDate(date)
	if err != nil {
		return nil, s.fail(ctx, "get day", err)
	}
	return &DayOutput{Body: view}, nil
}

func (s *Server) handleSaveDay(ctx context.Context, input *SaveDayInput) (*PlanOutput, error) {
	date, err := s.parseDate(input.Date)
	if err != nil {
		return nil, s.fail(ctx, "save day", err)
	}
	plan, err := s.services.Planner.SavePlan(ctx, service.SavePlanRequest{
		Date:    date,
		ItemIDs: input.Body.Items,
		Notes:   input.Body.Notes,
	})
	if err != nil {
		return nil, s.fail(ctx, "save day", err)
	}
	return &PlanOutput{Body: plan}, nil
}

func (s *Server) handleDeleteDay(ctx context.Context, input *DateInput) (*struct{}, error) {
	date, err := s.parseDate(input.Date)
	if err != nil {
		return nil, s.fail(ctx, "delete day", err)
	}
	if err := s.services.Planner.DeletePlanForDate(ctx, date); err != nil {
		return nil, s.fail(ctx, "delete day", err)
	}
	return nil, nil
}

func (s *Server) handleGetWeek(ctx context.Context, input *DateInput) (*WeekOutput, error) {
	date, err := s.parseDate(input.Date)
	if err != nil {
		return nil, s.fail(ctx, "get week", err)
	}
	return &WeekOutput{Body: s.services.Planner.Week(date)}, nil
}

// parseDate reads a path date in the planner's time zone.
func (s *Server) parseDate(raw string) (time.Time, error) {
	date, err := domain.ParseDate(raw, s.services.Planner.Location())
	if err != nil {
		return time.Time{}, domainerrors.ValidationWithDetails(err.Error(), map[string]string{"path.date": raw})
	}
	return date, nil
}
