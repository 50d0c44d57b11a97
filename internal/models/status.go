package models

import "time"

// ConnectionState describes the aggregate network/data-freshness state shown
// to clients.
type ConnectionState string

const (
	// StateUnknown is the initial state before any fetch has been attempted.
	StateUnknown ConnectionState = "unknown"
	// StateConnected means the last refresh fetched every resource.
	StateConnected ConnectionState = "connected"
	// StateOffline means remote data is disabled or unreachable.
	StateOffline ConnectionState = "offline"
	// StateError means the last refresh failed for at least one resource.
	StateError ConnectionState = "error"
)

// ConnectionStatus is the aggregate status reported by the content store.
type ConnectionStatus struct {
	State     ConnectionState `json:"state"`
	Message   string          `json:"message,omitempty"`
	CheckedAt time.Time       `json:"checked_at,omitzero"`
}

// RefreshState tracks the progress of refresh cycles. LastUpdate is nil until
// the first refresh completes.
type RefreshState struct {
	LastUpdate *time.Time `json:"last_update,omitempty"`
	IsLoading  bool       `json:"is_loading"`
}
