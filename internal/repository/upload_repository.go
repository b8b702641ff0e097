package repository

import (
	"github.com/fquiz/fquiz/internal/model"
	"gorm.io/gorm"
)

type UploadRepository interface {
	Create(upload *model.Upload) error
	FindByID(id string) (*model.Upload, error)
}

type uploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(upload *model.Upload) error {
	return r.db.Create(upload).Error
}

func (r *uploadRepository) FindByID(id string) (*model.Upload, error) {
	var upload model.Upload
	if err := r.db.First(&upload, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &upload, nil
}
