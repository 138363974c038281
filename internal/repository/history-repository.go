package repository

import (
	"errors"
	"log"

	"github.com/SundayYogurt/approval_service/internal/domain"
	"gorm.io/gorm"
)

// HistoryRepository is append-only: one insert and one ordered read, no
// update or delete in the contract.
type HistoryRepository interface {
	CreateEntry(entry *domain.History) error
	ListByRequestID(requestID string) ([]domain.History, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) CreateEntry(entry *domain.History) error {
	if entry == nil {
		return errors.New("nil history entry")
	}

	if err := r.db.Create(entry).Error; err != nil {
		log.Printf("create history entry error: %v", err)
		return errors.New("failed to create history entry")
	}
	return nil
}

func (r *historyRepository) ListByRequestID(requestID string) ([]domain.History, error) {
	var entries []domain.History

	err := r.db.
		Preload("User").
		Where("request_id = ?", requestID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		log.Printf("list history by request error: %v", err)
		return nil, err
	}

	return entries, nil
}
