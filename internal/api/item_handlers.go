package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
	"github.com/wardrobeapp/wardrobe-server/internal/service"
)

func (s *Server) registerItemRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List items",
		Description: "Returns wardrobe items, newest first, filtered by name, category and tags",
		Tags:        []string{"Items"},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID:   "addItem",
		Method:        http.MethodPost,
		Path:          "/api/v1/items",
		Summary:       "Add item",
		Description:   "Catalogues a new clothing item",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  s.maxUploadBytes,
	}, s.handleAddItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get item",
		Description: "Returns one item by ID",
		Tags:        []string{"Items"},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteItem",
		Method:        http.MethodDelete,
		Path:          "/api/v1/items/{id}",
		Summary:       "Delete item",
		Description:   "Removes an item and takes it out of every planned outfit. Unknown IDs are ignored.",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getVocabulary",
		Method:      http.MethodGet,
		Path:        "/api/v1/vocabulary",
		Summary:     "Tag vocabulary",
		Description: "Returns the item categories and the suggested color, season and style tags",
		Tags:        []string{"Items"},
	}, s.handleGetVocabulary)
}

// === DTOs ===

// ListItemsInput contains the gallery filter.
type ListItemsInput struct {
	Query    string `query:"q" doc:"Case-insensitive name substring"`
	Category string `query:"category" doc:"Category, or 'all'"`
	Tags     string `query:"tags" doc:"Comma-separated tags; an item matches if it has any of them"`
}

// ListItemsResponse contains a list of items.
type ListItemsResponse struct {
	Items []domain.ClothingItem `json:"items" doc:"Matching items, newest first"`
	Total int                   `json:"total" doc:"Number of matching items"`
}

// ListItemsOutput wraps the list response for Huma.
type ListItemsOutput struct {
	Body ListItemsResponse
}

// AddItemRequest is the request body for adding an item.
type AddItemRequest struct {
	Name     string   `json:"name" doc:"Display name"`
	Image    string   `json:"image" doc:"http(s) URL or data:image URI"`
	Category string   `json:"category" doc:"Category"`
	Tags     []string `json:"tags,omitempty" doc:"Tags; vocabulary tags and their aliases are canonicalized"`
}

// AddItemInput wraps the add item request for Huma.
type AddItemInput struct {
	Body AddItemRequest
}

// ItemOutput wraps a single item for Huma.
type ItemOutput struct {
	Body domain.ClothingItem
}

// ItemIDInput addresses one item.
type ItemIDInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// VocabularyOutput wraps the vocabulary for Huma.
type VocabularyOutput struct {
	Body service.VocabularyView
}

// === Handlers ===

func (s *Server) handleListItems(_ context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	items := s.services.Wardrobe.ListItems(service.ItemFilter{
		Query:    input.Query,
		Category: input.Category,
		Tags:     splitList(input.Tags),
	})
	return &ListItemsOutput{
		Body: ListItemsResponse{
			Items: items,
			Total: len(items),
		},
	}, nil
}

func (s *Server) handleAddItem(ctx context.Context, input *AddItemInput) (*ItemOutput, error) {
	item, err := s.services.Wardrobe.AddItem(ctx, service.AddItemRequest{
		Name:     input.Body.Name,
		Image:    input.Body.Image,
		Category: input.Body.Category,
		Tags:     input.Body.Tags,
	})
	if err != nil {
		return nil, s.fail(ctx, "add item", err)
	}
	return &ItemOutput{Body: item}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	item, err := s.services.Wardrobe.GetItem(input.ID)
	if err != nil {
		return nil, s.fail(ctx, "get item", err)
	}
	return &ItemOutput{Body: item}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *ItemIDInput) (*struct{}, error) {
	if err := s.services.Wardrobe.DeleteItem(ctx, input.ID); err != nil {
		return nil, s.fail(ctx, "delete item", err)
	}
	return nil, nil
}

func (s *Server) handleGetVocabulary(_ context.Context, _ *struct{}) (*VocabularyOutput, error) {
	return &VocabularyOutput{Body: s.services.Wardrobe.Vocabulary()}, nil
}
