package dto

import "github.com/SundayYogurt/approval_service/internal/domain"

type CreateRequestInput struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Type        string  `json:"type" validate:"required"`
	RequesterID string  `json:"requester_id"`
	ApproverID  string  `json:"approver_id" validate:"required"`
}

type UpdateStatusRequest struct {
	Status  string  `json:"status" validate:"required"`
	Comment *string `json:"comment,omitempty"`
}

// UpdateRequestInput patches a rejected request. Nil fields keep their
// previous value.
type UpdateRequestInput struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	ApproverID  *string `json:"approver_id,omitempty"`
}

type RequestFilters struct {
	Search      string `json:"search,omitempty"`
	Status      string `json:"status,omitempty"`
	Type        string `json:"type,omitempty"`
	RequesterID string `json:"requester_id,omitempty"`
	ApproverID  string `json:"approver_id,omitempty"`
}

type FilterRequestsBody struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	RequestFilters
}

type PageResult struct {
	Data       []domain.Request `json:"data"`
	Count      int64            `json:"count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}
