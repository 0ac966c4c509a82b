package handler

import "time"

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Handle() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	}
}
