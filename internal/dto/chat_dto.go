package dto

import "time"

type SendChatRequest struct {
	SessionId string `json:"session_id" validate:"omitempty,max=64"`
	Chat      string `json:"chat" validate:"required,max=4000"`
}

type SendChatResponse struct {
	SessionId string   `json:"session_id"`
	Reply     string   `json:"reply"`
	Mode      string   `json:"mode"`
	Intent    string   `json:"intent"`
	Pending   string   `json:"pending_confirmation"`
	Sources   []string `json:"sources,omitempty"`
	Score     *float64 `json:"score,omitempty"`
	Error     string   `json:"error,omitempty"`
}

type ChatMessageResponse struct {
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

type GetSessionResponse struct {
	SessionId   string                `json:"session_id"`
	Pending     string                `json:"pending_confirmation"`
	LastMode    string                `json:"last_mode,omitempty"`
	LastSources []string              `json:"last_sources,omitempty"`
	History     []ChatMessageResponse `json:"history"`
}

type ReindexRequest struct {
	// Async queues the rebuild on the event bus instead of waiting for it
	Async bool `json:"async"`
}

type ReindexResponse struct {
	Queued      bool       `json:"queued"`
	Sections    int        `json:"sections"`
	Sources     int        `json:"sources"`
	Reason      string     `json:"reason,omitempty"`
	ReindexedAt *time.Time `json:"reindexed_at,omitempty"`
}
