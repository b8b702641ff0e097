package repository

import (
	"github.com/fquiz/fquiz/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	Create(response *model.Response) error
	FindByAttemptID(attemptID string) ([]model.Response, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Create(response *model.Response) error {
	return r.db.Create(response).Error
}

func (r *responseRepository) FindByAttemptID(attemptID string) ([]model.Response, error) {
	var responses []model.Response
	if err := r.db.Where("attempt_id = ?", attemptID).Order("created_at ASC").Find(&responses).Error; err != nil {
		return nil, err
	}
	return responses, nil
}
