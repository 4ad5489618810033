package providers

import "time"

// Upper bounds for graceful shutdown. The SSE manager only has to close
// client channels, so it gets the shorter budget.
const (
	shutdownTimeout    = 30 * time.Second
	sseShutdownTimeout = 5 * time.Second
)
