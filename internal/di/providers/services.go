package providers

import (
	"github.com/samber/do/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/config"
	"github.com/wardrobeapp/wardrobe-server/internal/logger"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
	"github.com/wardrobeapp/wardrobe-server/internal/store"
	"github.com/wardrobeapp/wardrobe-server/internal/suggest"
)

// ProvideWardrobeService provides the item catalogue service.
func ProvideWardrobeService(i do.Injector) (*service.WardrobeService, error) {
	items := do.MustInvoke[*store.ItemStore](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewWardrobeService(items, searchService, sseHandle.Manager, log.Logger), nil
}

// ProvidePlannerService provides the outfit calendar service.
func ProvidePlannerService(i do.Injector) (*service.PlannerService, error) {
	plans := do.MustInvoke[*store.PlanStore](i)
	items := do.MustInvoke[*store.ItemStore](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlannerService(plans, items, sseHandle.Manager, log.Logger), nil
}

// SuggestionServiceHandle wraps the suggestion service with shutdown capability.
type SuggestionServiceHandle struct {
	*service.SuggestionService
}

// Shutdown implements do.Shutdownable.
func (h *SuggestionServiceHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideSuggestionService provides the deferred suggestion runner.
func ProvideSuggestionService(i do.Injector) (*SuggestionServiceHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	items := do.MustInvoke[*store.ItemStore](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	svc := service.NewSuggestionService(
		items,
		suggest.NewEngine(),
		cfg.Suggestions.Delay,
		sseHandle.Manager,
		log.Logger,
	)
	return &SuggestionServiceHandle{SuggestionService: svc}, nil
}

// ProvideBackupService provides wardrobe export and import.
func ProvideBackupService(i do.Injector) (*service.BackupService, error) {
	items := do.MustInvoke[*store.ItemStore](i)
	plans := do.MustInvoke[*store.PlanStore](i)
	searchService := do.MustInvoke[*service.SearchService](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBackupService(items, plans, searchService, sseHandle.Manager, log.Logger), nil
}
