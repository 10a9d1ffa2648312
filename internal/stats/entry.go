package stats

import "time"

// Entry wraps a cached payload with the time it was fetched.
type Entry struct {
	Data      Payload   `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}
