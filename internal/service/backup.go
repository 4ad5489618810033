package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	domainerrors "github.com/wardrobeapp/wardrobe-server/internal/errors"
	"github.com/wardrobeapp/wardrobe-server/internal/id"
	"github.com/wardrobeapp/wardrobe-server/internal/sse"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
)

// SnapshotVersion is the export format version.
const SnapshotVersion = "1.0"

// Snapshot is a complete export of the wardrobe.
type Snapshot struct {
	Version    string                `json:"version" required:"false"`
	ID         string                `json:"id" required:"false"`
	ExportedAt time.Time             `json:"exported_at" required:"false"`
	Items      []domain.ClothingItem `json:"items"`
	Plans      []domain.OutfitPlan   `json:"plans" required:"false"`
}

// ImportSummary reports what an import kept.
type ImportSummary struct {
	Items        int `json:"items"`
	Plans        int `json:"plans"`
	DroppedPlans int `json:"dropped_plans"`
}

// BackupService exports and imports whole wardrobes.
type BackupService struct {
	items  *store.ItemStore
	plans  *store.PlanStore
	search *SearchService
	events EventEmitter
	logger *slog.Logger
	now    func() time.Time
}

// NewBackupService creates a backup service. search and events may be nil.
func NewBackupService(
	items *store.ItemStore,
	plans *store.PlanStore,
	search *SearchService,
	events EventEmitter,
	logger *slog.Logger,
) *BackupService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BackupService{
		items:  items,
		plans:  plans,
		search: search,
		events: emitterOrNoop(events),
		logger: logger,
		now:    time.Now,
	}
}

// Export returns the current items and plans.
func (s *BackupService) Export() Snapshot {
	return Snapshot{
		Version:    SnapshotVersion,
		ID:         uuid.NewString(),
		ExportedAt: s.now().UTC(),
		Items:      s.items.List(),
		Plans:      s.plans.List(),
	}
}

// Import replaces both collections with the snapshot's. Items are written
// first; plan references to items not in the snapshot are dropped, and so
// are plans left with no items or sharing a date with a later plan.
func (s *BackupService) Import(ctx context.Context, snap Snapshot) (ImportSummary, error) {
	items, err := s.importItems(snap.Items)
	if err != nil {
		return ImportSummary{}, err
	}
	plans, dropped, err := s.importPlans(snap.Plans, items)
	if err != nil {
		return ImportSummary{}, err
	}

	previous := s.items.List()
	if err := s.items.Replace(ctx, items); err != nil {
		return ImportSummary{}, fmt.Errorf("replace items: %w", err)
	}
	if err := s.plans.Replace(ctx, plans); err != nil {
		// The old plans are still in place and reference the old items.
		if restoreErr := s.items.Replace(ctx, previous); restoreErr != nil {
			s.logger.Error("failed to restore items after plan import failed",
				"error", restoreErr,
				"items", len(previous),
			)
		}
		return ImportSummary{}, fmt.Errorf("replace plans: %w", err)
	}

	if s.search != nil {
		if err := s.search.Reindex(ctx); err != nil {
			s.logger.Warn("failed to reindex after import", "error", err)
		}
	}

	summary := ImportSummary{Items: len(items), Plans: len(plans), DroppedPlans: dropped}
	s.events.Emit(sse.NewWardrobeImportedEvent(summary.Items, summary.Plans))
	s.logger.Info("wardrobe imported",
		"snapshot_id", snap.ID,
		"items", summary.Items,
		"plans", summary.Plans,
		"dropped_plans", summary.DroppedPlans,
	)
	return summary, nil
}

func (s *BackupService) importItems(in []domain.ClothingItem) ([]domain.ClothingItem, error) {
	details := make(map[string]string)
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.ClothingItem, 0, len(in))

	for i, raw := range in {
		item := raw.Clone()
		item.ID = strings.TrimSpace(item.ID)
		item.Name = strings.TrimSpace(item.Name)

		switch {
		case item.ID == "":
			details[fmt.Sprintf("items[%d].id", i)] = "is required"
			continue
		case item.Name == "":
			details[fmt.Sprintf("items[%d].name", i)] = "is required"
			continue
		}
		if _, dup := seen[item.ID]; dup {
			details[fmt.Sprintf("items[%d].id", i)] = "duplicates an earlier item"
			continue
		}
		seen[item.ID] = struct{}{}

		if !item.Category.Valid() {
			s.logger.Warn("importing item with unrecognized category",
				"item_id", item.ID,
				"category", item.Category,
			)
		}
		item.Tags = domain.CanonicalTags(item.Tags)
		if item.CreatedAt.IsZero() {
			item.CreatedAt = s.now().UTC().Truncate(time.Millisecond)
		}
		out = append(out, item)
	}

	if len(details) > 0 {
		return nil, domainerrors.ValidationWithDetails("snapshot contains invalid items", details)
	}
	return out, nil
}

func (s *BackupService) importPlans(in []domain.OutfitPlan, items []domain.ClothingItem) ([]domain.OutfitPlan, int, error) {
	known := make(map[string]struct{}, len(items))
	for i := range items {
		known[items[i].ID] = struct{}{}
	}

	loc := s.plans.Location()
	byDay := make(map[string]int, len(in))
	out := make([]domain.OutfitPlan, 0, len(in))
	dropped := 0

	for _, raw := range in {
		plan := raw.Clone()
		if plan.Date.IsZero() {
			dropped++
			continue
		}

		kept := make([]string, 0, len(plan.Items))
		for _, itemID := range uniqueIDs(plan.Items) {
			if _, ok := known[itemID]; ok {
				kept = append(kept, itemID)
			}
		}
		if len(kept) == 0 {
			dropped++
			continue
		}
		plan.Items = kept
		plan.Notes = strings.TrimSpace(plan.Notes)

		if plan.ID == "" {
			planID, err := id.Generate(id.PrefixPlan)
			if err != nil {
				return nil, 0, err
			}
			plan.ID = planID
		}

		day := plan.Date.In(loc).Format(domain.DateLayout)
		if at, ok := byDay[day]; ok {
			// Later entries win, as with a second save for the same day.
			out[at] = plan
			dropped++
			continue
		}
		byDay[day] = len(out)
		out = append(out, plan)
	}

	return out, dropped, nil
}
