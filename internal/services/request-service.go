package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SundayYogurt/approval_service/internal/domain"
	"github.com/SundayYogurt/approval_service/internal/dto"
	"github.com/SundayYogurt/approval_service/internal/interfaces"
	"github.com/SundayYogurt/approval_service/internal/repository"
	"github.com/SundayYogurt/approval_service/pkg/utils"
)

// Lifecycle event keys published to the broker.
const (
	EventRequestCreated       = "request.created"
	EventRequestStatusChanged = "request.status_changed"
	EventRequestUpdated       = "request.updated"
)

// RequestService owns the request lifecycle: it is the only writer of
// history entries and the only path through which a status changes.
type RequestService interface {
	Create(input dto.CreateRequestInput) (*domain.Request, error)
	FindAllWithFilters(page, limit int, filters dto.RequestFilters, caller dto.AuthResponse) (*dto.PageResult, error)
	FindByID(id string) (*domain.Request, error)
	UpdateStatus(id, status, userID string, comment *string) (*domain.Request, error)
	Update(id string, input dto.UpdateRequestInput, userID string) (*domain.Request, error)
	ListHistory(requestID string) ([]domain.History, error)
}

type requestService struct {
	requestRepo repository.RequestRepository
	historyRepo repository.HistoryRepository
	userRepo    repository.UserRepository

	// messaging
	producer interfaces.ProducerHandler
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	historyRepo repository.HistoryRepository,
	userRepo repository.UserRepository,
	producer interfaces.ProducerHandler,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		historyRepo: historyRepo,
		userRepo:    userRepo,
		producer:    producer,
	}
}

// Create inserts a new pending request and appends its "Creado" entry. The
// requester is resolved after the insert; if the lookup fails the row stays
// persisted and the error surfaces (no compensating delete).
func (s *requestService) Create(input dto.CreateRequestInput) (*domain.Request, error) {
	title := strings.TrimSpace(input.Title)
	reqType := strings.TrimSpace(input.Type)

	if title == "" || reqType == "" {
		return nil, errors.New("title and type are required")
	}
	if input.RequesterID == "" || input.ApproverID == "" {
		return nil, errors.New("requester_id and approver_id are required")
	}

	req := &domain.Request{
		Title:       title,
		Description: input.Description,
		Type:        reqType,
		Status:      domain.StatusPending,
		RequesterID: input.RequesterID,
		ApproverID:  input.ApproverID,
	}

	req, err := s.requestRepo.CreateRequest(req)
	if err != nil {
		return nil, err
	}

	requester, err := s.userRepo.FindUserByID(input.RequesterID)
	if err != nil {
		return nil, err
	}

	entry := &domain.History{
		Action:    domain.ActionCreated,
		UserID:    requester.ID,
		RequestID: req.ID,
	}
	if err := s.historyRepo.CreateEntry(entry); err != nil {
		return nil, err
	}

	s.publish(EventRequestCreated, req)
	return req, nil
}

// FindAllWithFilters scopes the filter set by the caller's role before
// querying: requesters only ever see their own submissions, approvers only
// what is assigned to them. Caller-supplied identity filters are discarded.
func (s *requestService) FindAllWithFilters(page, limit int, filters dto.RequestFilters, caller dto.AuthResponse) (*dto.PageResult, error) {
	page, limit = utils.NormalizePagination(page, limit)

	switch domain.Role(caller.Role) {
	case domain.RoleRequester:
		filters.RequesterID = caller.UserID
	case domain.RoleApprover:
		filters.ApproverID = caller.UserID
	}

	data, count, err := s.requestRepo.FindWithFilters(page, limit, filters)
	if err != nil {
		return nil, err
	}

	return &dto.PageResult{
		Data:       data,
		Count:      count,
		Page:       page,
		Limit:      limit,
		TotalPages: utils.TotalPages(count, limit),
	}, nil
}

func (s *requestService) FindByID(id string) (*domain.Request, error) {
	if id == "" {
		return nil, domain.ErrRequestNotFound
	}
	return s.requestRepo.FindRequestWithRelations(id)
}

// UpdateStatus overwrites the status and appends one history entry carrying
// the status string as its action. The status value must parse into the
// closed set, but no transition guard exists: any parsed status is accepted
// from any prior status. The status write completes before the history write
// is attempted; a failure in between leaves the new status standing.
func (s *requestService) UpdateStatus(id, status, userID string, comment *string) (*domain.Request, error) {
	req, err := s.requestRepo.FindRequestByID(id)
	if err != nil {
		return nil, err
	}

	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	req.Status = parsed
	if err := s.requestRepo.SaveRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	entry := &domain.History{
		Action:    string(parsed),
		Comment:   comment,
		UserID:    user.ID,
		RequestID: req.ID,
	}
	if err := s.historyRepo.CreateEntry(entry); err != nil {
		return nil, err
	}

	s.publish(EventRequestStatusChanged, req)
	return req, nil
}

// Update revises a rejected request and puts it back to pending. The acting
// user is resolved before the row is touched, so a bad user id cannot leave
// a half-updated request behind.
func (s *requestService) Update(id string, input dto.UpdateRequestInput, userID string) (*domain.Request, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	req, err := s.requestRepo.FindRequestByID(id)
	if err != nil {
		return nil, err
	}

	if req.Status != domain.StatusRejected {
		return nil, domain.ErrOnlyRejectedEditable
	}

	// nil fields keep their previous value
	if input.Title != nil {
		req.Title = *input.Title
	}
	if input.Description != nil {
		req.Description = input.Description
	}
	if input.Type != nil {
		req.Type = *input.Type
	}

	if input.ApproverID != nil && *input.ApproverID != "" {
		approver, err := s.userRepo.FindUserByID(*input.ApproverID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.ErrApproverNotFound
			}
			return nil, err
		}
		req.ApproverID = approver.ID
		req.Approver = nil
	}

	req.Status = domain.StatusPending

	if err := s.requestRepo.SaveRequest(req); err != nil {
		return nil, err
	}

	entry := &domain.History{
		Action:    domain.ActionUpdated,
		UserID:    user.ID,
		RequestID: req.ID,
	}
	if err := s.historyRepo.CreateEntry(entry); err != nil {
		return nil, err
	}

	s.publish(EventRequestUpdated, req)
	return req, nil
}

func (s *requestService) ListHistory(requestID string) ([]domain.History, error) {
	if _, err := s.requestRepo.FindRequestByID(requestID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListByRequestID(requestID)
}

func (s *requestService) publish(event string, req *domain.Request) {
	if s.producer == nil {
		return
	}
	payload := fmt.Sprintf(
		`{"request_id":"%s","status":"%s","requester_id":"%s","approver_id":"%s"}`,
		req.ID, req.Status, req.RequesterID, req.ApproverID,
	)
	_ = s.producer.PublishMessage([]byte(event), []byte(payload))
}
