package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	domainerrors "github.com/wardrobeapp/wardrobe-server/internal/errors"
	"github.com/wardrobeapp/wardrobe-server/internal/sse"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

// SavePlanRequest assigns items to one calendar date.
type SavePlanRequest struct {
	Date    time.Time
	ItemIDs []string
	Notes   string
}

// DayView is one calendar day with its plan, if any, and the plan's items
// resolved against the wardrobe.
type DayView struct {
	Date  string                `json:"date"` // YYYY-MM-DD
	Plan  *domain.OutfitPlan    `json:"plan,omitempty"`
	Items []domain.ClothingItem `json:"items"`
}

// WeekView is Monday through Sunday of one week.
type WeekView struct {
	Start string    `json:"start"`
	End   string    `json:"end"`
	Days  []DayView `json:"days"`
}

// PlannerService manages the outfit calendar.
type PlannerService struct {
	plans  *store.PlanStore
	items  *store.ItemStore
	events EventEmitter
	logger *slog.Logger
}

// NewPlannerService creates a planner service. events may be nil.
func NewPlannerService(plans *store.PlanStore, items *store.ItemStore, events EventEmitter, logger *slog.Logger) *PlannerService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PlannerService{
		plans:  plans,
		items:  items,
		events: emitterOrNoop(events),
		logger: logger,
	}
}

// Location returns the planner time zone.
func (s *PlannerService) Location() *time.Location {
	return s.plans.Location()
}

// Week returns the seven days starting on the Monday of day's week.
func (s *PlannerService) Week(day time.Time) WeekView {
	loc := s.plans.Location()
	start := domain.StartOfWeek(day, loc)

	view := WeekView{
		Start: start.Format(domain.DateLayout),
		End:   start.AddDate(0, 0, 6).Format(domain.DateLayout),
		Days:  make([]DayView, 0, 7),
	}
	for i := range 7 {
		view.Days = append(view.Days, s.dayView(start.AddDate(0, 0, i)))
	}
	return view
}

// PlanForDate returns the day's plan with resolved items, or
// store.ErrPlanNotFound.
func (s *PlannerService) PlanForDate(date time.Time) (DayView, error) {
	view := s.dayView(date)
	if view.Plan == nil {
		return DayView{}, store.ErrPlanNotFound
	}
	return view, nil
}

// Plans returns every plan.
func (s *PlannerService) Plans() []domain.OutfitPlan {
	return s.plans.List()
}

// SavePlan replaces the plan for req.Date. Every item ID must exist in the
// wardrobe; duplicates collapse keeping the first position.
func (s *PlannerService) SavePlan(ctx context.Context, req SavePlanRequest) (domain.OutfitPlan, error) {
	if req.Date.IsZero() {
		return domain.OutfitPlan{}, domainerrors.Validation("a plan needs a date")
	}

	itemIDs := uniqueIDs(req.ItemIDs)
	if len(itemIDs) == 0 {
		return domain.OutfitPlan{}, store.ErrEmptyPlan
	}

	plan, unknown, err := s.plans.UpsertChecked(ctx, req.Date, itemIDs, strings.TrimSpace(req.Notes), s.items.Has)
	if err != nil {
		return domain.OutfitPlan{}, err
	}
	if len(unknown) > 0 {
		return domain.OutfitPlan{}, domainerrors.ValidationWithDetails(
			"outfit references unknown items",
			map[string]any{"unknown_items": unknown},
		)
	}

	s.events.Emit(sse.NewPlanSavedEvent(plan))
	s.logger.Info("plan saved",
		"plan_id", plan.ID,
		"date", s.civil(plan.Date),
		"items", len(plan.Items),
	)
	return plan, nil
}

// DeletePlan removes a plan by ID. Unknown IDs are ignored.
func (s *PlannerService) DeletePlan(ctx context.Context, planID string) error {
	deleted, err := s.plans.Delete(ctx, planID)
	if err != nil || !deleted {
		return err
	}
	s.events.Emit(sse.NewPlanDeletedEvent(planID, ""))
	s.logger.Info("plan deleted", "plan_id", planID)
	return nil
}

// DeletePlanForDate removes the plan of date's civil date, if any.
func (s *PlannerService) DeletePlanForDate(ctx context.Context, date time.Time) error {
	deleted, err := s.plans.DeleteForDate(ctx, date)
	if err != nil || !deleted {
		return err
	}
	day := s.civil(date)
	s.events.Emit(sse.NewPlanDeletedEvent("", day))
	s.logger.Info("plan deleted", "date", day)
	return nil
}

func (s *PlannerService) dayView(date time.Time) DayView {
	view := DayView{
		Date:  s.civil(date),
		Items: []domain.ClothingItem{},
	}

	plan, ok := s.plans.ForDate(date)
	if !ok {
		return view
	}
	view.Plan = &plan
	for _, itemID := range plan.Items {
		item, err := s.items.Get(itemID)
		if err != nil {
			continue
		}
		view.Items = append(view.Items, item)
	}
	return view
}

func (s *PlannerService) civil(t time.Time) string {
	return t.In(s.plans.Location()).Format(domain.DateLayout)
}

func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		itemID := strings.TrimSpace(raw)
		if itemID == "" {
			continue
		}
		if _, ok := seen[itemID]; ok {
			continue
		}
		seen[itemID] = struct{}{}
		out = append(out, itemID)
	}
	return out
}
