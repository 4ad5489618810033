package store

// Blob keys of the persisted collections.
const (
	KeyItems = "items"
	KeyPlans = "plans"
)
