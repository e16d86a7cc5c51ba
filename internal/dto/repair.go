package dto

import (
	"encoding/json"
	"time"
)

type CreateRepairRequest struct {
	Subject string          `json:"subject" binding:"required,min=3,max=120"`
	Details json.RawMessage `json:"details" binding:"omitempty"`
}

type UpdateRepairStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress done rejected"`
}

type RepairResponse struct {
	ID        uint            `json:"id"`
	UserID    uint            `json:"user_id"`
	Subject   string          `json:"subject"`
	Status    string          `json:"status"`
	Details   json.RawMessage `json:"details,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
