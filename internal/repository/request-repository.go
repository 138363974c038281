package repository

import (
	"errors"
	"log"
	"strings"

	"github.com/SundayYogurt/approval_service/internal/domain"
	"github.com/SundayYogurt/approval_service/internal/dto"
	"gorm.io/gorm"
)

type RequestRepository interface {
	CreateRequest(req *domain.Request) (*domain.Request, error)
	SaveRequest(req *domain.Request) error
	FindRequestByID(id string) (*domain.Request, error)
	FindRequestWithRelations(id string) (*domain.Request, error)
	FindWithFilters(page, limit int, filters dto.RequestFilters) ([]domain.Request, int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) CreateRequest(req *domain.Request) (*domain.Request, error) {
	if req == nil {
		return nil, errors.New("nil request")
	}

	if err := r.db.Create(req).Error; err != nil {
		log.Printf("create request error: %v", err)
		return nil, errors.New("failed to create request")
	}

	return req, nil
}

func (r *requestRepository) SaveRequest(req *domain.Request) error {
	if req == nil {
		return errors.New("nil request")
	}

	if err := r.db.Save(req).Error; err != nil {
		log.Printf("save request error: %v", err)
		return errors.New("failed to save request")
	}
	return nil
}

func (r *requestRepository) FindRequestByID(id string) (*domain.Request, error) {
	req := &domain.Request{}

	if err := r.db.First(req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		log.Printf("find request by id error: %v", err)
		return nil, err
	}

	return req, nil
}

func (r *requestRepository) FindRequestWithRelations(id string) (*domain.Request, error) {
	req := &domain.Request{}

	err := r.db.
		Preload("Requester").
		Preload("Approver").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("History.User").
		First(req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRequestNotFound
		}
		log.Printf("find request with relations error: %v", err)
		return nil, err
	}

	return req, nil
}

// filtered builds the conjunctive predicate set. Absent filters add no
// predicate at all.
func (r *requestRepository) filtered(filters dto.RequestFilters) *gorm.DB {
	q := r.db.Model(&domain.Request{})

	if s := strings.TrimSpace(filters.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Type != "" {
		q = q.Where("type = ?", filters.Type)
	}
	if filters.RequesterID != "" {
		q = q.Where("requester_id = ?", filters.RequesterID)
	}
	if filters.ApproverID != "" {
		q = q.Where("approver_id = ?", filters.ApproverID)
	}

	return q
}

// FindWithFilters counts the filtered set first, then fetches one page
// ordered by creation time descending.
func (r *requestRepository) FindWithFilters(page, limit int, filters dto.RequestFilters) ([]domain.Request, int64, error) {
	var count int64
	if err := r.filtered(filters).Count(&count).Error; err != nil {
		log.Printf("count requests error: %v", err)
		return nil, 0, err
	}

	var requests []domain.Request
	err := r.filtered(filters).
		Preload("Requester").
		Preload("Approver").
		Preload("History").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&requests).Error
	if err != nil {
		log.Printf("find requests with filters error: %v", err)
		return nil, 0, err
	}

	return requests, count, nil
}
