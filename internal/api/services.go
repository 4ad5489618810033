package api

import "github.com/wardrobeapp/wardrobe-server/internal/service"

// Services groups the business services used by the handlers.
type Services struct {
	Wardrobe    *service.WardrobeService
	Planner     *service.PlannerService
	Suggestions *service.SuggestionService
	Search      *service.SearchService
	Backup      *service.BackupService
}
