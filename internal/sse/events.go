// Package sse implements Server-Sent Events for live wardrobe updates.
package sse

import (
	"time"

	"github.com/wardrobeapp/wardrobe-server/internal/domain"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventItemCreated is sent after an item is added.
	EventItemCreated EventType = "item.created"
	// EventItemDeleted is sent after an item is removed and pruned from plans.
	EventItemDeleted EventType = "item.deleted"

	// EventPlanSaved is sent after a plan is created or replaced.
	EventPlanSaved EventType = "plan.saved"
	// EventPlanDeleted is sent after a plan is removed explicitly.
	EventPlanDeleted EventType = "plan.deleted"

	// EventSuggestionsReady carries the result of a deferred suggestion run.
	EventSuggestionsReady EventType = "suggestions.ready"

	// EventWardrobeImported is sent after a backup replaced both collections.
	EventWardrobeImported EventType = "wardrobe.imported"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// ItemEventData is the data payload for item.created.
type ItemEventData struct {
	Item domain.ClothingItem `json:"item"`
}

// ItemDeletedEventData is the data payload for item.deleted.
type ItemDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	ItemID    string    `json:"item_id"`
}

// PlanEventData is the data payload for plan.saved.
type PlanEventData struct {
	Plan domain.OutfitPlan `json:"plan"`
}

// PlanDeletedEventData is the data payload for plan.deleted.
type PlanDeletedEventData struct {
	PlanID string `json:"plan_id,omitempty"`
	Date   string `json:"date,omitempty"`
}

// SuggestionsReadyEventData is the data payload for suggestions.ready.
type SuggestionsReadyEventData struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// WardrobeImportedEventData is the data payload for wardrobe.imported.
type WardrobeImportedEventData struct {
	Items int `json:"items"`
	Plans int `json:"plans"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

func newEvent(t EventType, data any) Event {
	return Event{Type: t, Data: data, Timestamp: time.Now()}
}

// NewItemCreatedEvent creates an item.created event.
func NewItemCreatedEvent(item domain.ClothingItem) Event {
	return newEvent(EventItemCreated, ItemEventData{Item: item})
}

// NewItemDeletedEvent creates an item.deleted event.
func NewItemDeletedEvent(itemID string) Event {
	return newEvent(EventItemDeleted, ItemDeletedEventData{ItemID: itemID, DeletedAt: time.Now()})
}

// NewPlanSavedEvent creates a plan.saved event.
func NewPlanSavedEvent(plan domain.OutfitPlan) Event {
	return newEvent(EventPlanSaved, PlanEventData{Plan: plan})
}

// NewPlanDeletedEvent creates a plan.deleted event. Either field may be empty
// depending on whether the plan was removed by ID or by date.
func NewPlanDeletedEvent(planID, date string) Event {
	return newEvent(EventPlanDeleted, PlanDeletedEventData{PlanID: planID, Date: date})
}

// NewSuggestionsReadyEvent creates a suggestions.ready event.
func NewSuggestionsReadyEvent(suggestions []domain.Suggestion, generatedAt time.Time) Event {
	return newEvent(EventSuggestionsReady, SuggestionsReadyEventData{
		GeneratedAt: generatedAt,
		Suggestions: suggestions,
	})
}

// NewWardrobeImportedEvent creates a wardrobe.imported event.
func NewWardrobeImportedEvent(items, plans int) Event {
	return newEvent(EventWardrobeImported, WardrobeImportedEventData{Items: items, Plans: plans})
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return newEvent(EventHeartbeat, HeartbeatEventData{ServerTime: time.Now()})
}
