package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/service"
)

func (s *Server) registerBackupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exportWardrobe",
		Method:      http.MethodGet,
		Path:        "/api/v1/export",
		Summary:     "Export wardrobe",
		Description: "Returns every item and plan as one snapshot",
		Tags:        []string{"Backup"},
	}, s.handleExport)

	huma.Register(s.api, huma.Operation{
		OperationID:  "importWardrobe",
		Method:       http.MethodPost,
		Path:         "/api/v1/import",
		Summary:      "Import wardrobe",
		Description:  "Replaces the wardrobe with a snapshot. Plans whose items are all unknown are dropped.",
		Tags:         []string{"Backup"},
		MaxBodyBytes: s.maxUploadBytes,
	}, s.handleImport)
}

// ExportOutput wraps the snapshot for Huma.
type ExportOutput struct {
	ContentDisposition string `header:"Content-Disposition"`
	Body               service.Snapshot
}

// ImportInput wraps the snapshot to import.
type ImportInput struct {
	Body service.Snapshot
}

// ImportOutput wraps the import summary for Huma.
type ImportOutput struct {
	Body service.ImportSummary
}

func (s *Server) handleExport(_ context.Context, _ *struct{}) (*ExportOutput, error) {
	snap := s.services.Backup.Export()
	return &ExportOutput{
		ContentDisposition: fmt.Sprintf(`attachment; filename="wardrobe-%s.json"`, snap.ExportedAt.Format("20060102-150405")),
		Body:               snap,
	}, nil
}

func (s *Server) handleImport(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	summary, err := s.services.Backup.Import(ctx, input.Body)
	if err != nil {
		return nil, s.fail(ctx, "import wardrobe", err)
	}
	return &ImportOutput{Body: summary}, nil
}
