package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/id"
)

// PlanStore holds the outfit plans, at most one per civil date, and persists
// them under KeyPlans on every change.
type PlanStore struct {
	mu     sync.RWMutex
	plans  []domain.OutfitPlan
	coll   collection[domain.OutfitPlan]
	loc    *time.Location
	logger *slog.Logger
}

var _ ItemPruner = (*PlanStore)(nil)

// NewPlanStore creates an empty plan store whose civil dates are computed in
// loc (UTC when nil). Call Load before serving.
func NewPlanStore(blobs Blobs, loc *time.Location, logger *slog.Logger) *PlanStore {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PlanStore{
		plans:  []domain.OutfitPlan{},
		coll:   newCollection[domain.OutfitPlan](blobs, KeyPlans, logger),
		loc:    loc,
		logger: logger,
	}
}

// Location returns the time zone civil dates are computed in.
func (s *PlanStore) Location() *time.Location {
	return s.loc
}

// Load replaces the in-memory plans with the persisted ones.
func (s *PlanStore) Load(ctx context.Context) error {
	plans, err := s.coll.load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.plans = plans
	s.mu.Unlock()

	s.logger.Info("plans loaded", "count", len(plans))
	return nil
}

// ItemExists reports whether an item is still in the wardrobe.
type ItemExists func(itemID string) bool

// Upsert replaces the plan for date's civil date with a new plan holding
// itemIDs and notes. An existing plan for that date is dropped, not merged.
func (s *PlanStore) Upsert(ctx context.Context, date time.Time, itemIDs []string, notes string) (domain.OutfitPlan, error) {
	plan, _, err := s.UpsertChecked(ctx, date, itemIDs, notes, nil)
	return plan, err
}

// UpsertChecked is Upsert with every item ID checked against exists while
// the plan lock is held. It returns the unknown IDs, and writes nothing,
// when any ID does not resolve. PruneItem takes the same lock, so an item
// deleted concurrently is either reported here or pruned after the insert.
// A nil exists skips the check.
func (s *PlanStore) UpsertChecked(
	ctx context.Context,
	date time.Time,
	itemIDs []string,
	notes string,
	exists ItemExists,
) (domain.OutfitPlan, []string, error) {
	if err := ctx.Err(); err != nil {
		return domain.OutfitPlan{}, nil, err
	}
	if len(itemIDs) == 0 {
		return domain.OutfitPlan{}, nil, ErrEmptyPlan
	}

	planID, err := id.Generate(id.PrefixPlan)
	if err != nil {
		return domain.OutfitPlan{}, nil, err
	}

	plan := domain.OutfitPlan{
		ID:    planID,
		Date:  date,
		Items: slices.Clone(itemIDs),
		Notes: notes,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if exists != nil {
		var unknown []string
		for _, itemID := range plan.Items {
			if !exists(itemID) {
				unknown = append(unknown, itemID)
			}
		}
		if len(unknown) > 0 {
			return domain.OutfitPlan{}, unknown, nil
		}
	}

	next := slices.DeleteFunc(slices.Clone(s.plans), func(p domain.OutfitPlan) bool {
		return domain.SameDay(p.Date, date, s.loc)
	})
	next = append(next, plan)

	if err := s.coll.save(ctx, next); err != nil {
		return domain.OutfitPlan{}, nil, err
	}
	s.plans = next

	return plan.Clone(), nil, nil
}

// Delete removes the plan with the given ID and reports whether it existed.
func (s *PlanStore) Delete(ctx context.Context, planID string) (bool, error) {
	return s.deleteWhere(ctx, func(p domain.OutfitPlan) bool {
		return p.ID == planID
	})
}

// DeleteForDate removes the plan for date's civil date, if any.
func (s *PlanStore) DeleteForDate(ctx context.Context, date time.Time) (bool, error) {
	return s.deleteWhere(ctx, func(p domain.OutfitPlan) bool {
		return domain.SameDay(p.Date, date, s.loc)
	})
}

func (s *PlanStore) deleteWhere(ctx context.Context, match func(domain.OutfitPlan) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.plans), match)
	if len(next) == len(s.plans) {
		return false, nil
	}

	if err := s.coll.save(ctx, next); err != nil {
		return false, err
	}
	s.plans = next
	return true, nil
}

// PruneItem removes itemID from every plan and drops plans left without
// items. Nothing is written when no plan referenced the item.
func (s *PlanStore) PruneItem(ctx context.Context, itemID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	next := make([]domain.OutfitPlan, 0, len(s.plans))
	for _, p := range s.plans {
		kept, removed := p.Without(itemID)
		if !removed {
			next = append(next, p)
			continue
		}
		changed = true
		if len(kept) == 0 {
			continue
		}
		p.Items = kept
		next = append(next, p)
	}

	if !changed {
		return nil
	}

	if err := s.coll.save(ctx, next); err != nil {
		return err
	}
	s.plans = next

	s.logger.Debug("item pruned from plans", "item_id", itemID, "plans", len(next))
	return nil
}

// ForDate returns the plan for date's civil date, ignoring time of day.
func (s *PlanStore) ForDate(date time.Time) (domain.OutfitPlan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.plans {
		if domain.SameDay(p.Date, date, s.loc) {
			return p.Clone(), true
		}
	}
	return domain.OutfitPlan{}, false
}

// List returns a copy of every plan in insertion order.
func (s *PlanStore) List() []domain.OutfitPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.OutfitPlan, len(s.plans))
	for i := range s.plans {
		out[i] = s.plans[i].Clone()
	}
	return out
}

// Replace swaps the whole collection.
func (s *PlanStore) Replace(ctx context.Context, plans []domain.OutfitPlan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	next := make([]domain.OutfitPlan, len(plans))
	for i := range plans {
		next[i] = plans[i].Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.coll.save(ctx, next); err != nil {
		return err
	}
	s.plans = next
	return nil
}
