package repository

import (
	"github.com/fquiz/fquiz/internal/model"
	"gorm.io/gorm"
)

type CodenameRepository interface {
	Create(codename *model.Codename) error
	DeleteByName(name string) error
}

type codenameRepository struct {
	db *gorm.DB
}

func NewCodenameRepository(db *gorm.DB) CodenameRepository {
	return &codenameRepository{db: db}
}

func (r *codenameRepository) Create(codename *model.Codename) error {
	return r.db.Create(codename).Error
}

func (r *codenameRepository) DeleteByName(name string) error {
	return r.db.Where("name = ?", name).Delete(&model.Codename{}).Error
}
