package repository

import (
	"github.com/fquiz/fquiz/internal/model"
	"gorm.io/gorm"
)

type SetRepository interface {
	Create(set *model.Set) error
	FindByID(id string) (*model.Set, error)
	FindByIDWithContent(id string) (*model.Set, error)
	FindPublished() ([]model.Set, error)
	FindVisibleTo(userID string) ([]model.Set, error)
	Update(set *model.Set) error
	Delete(id string) error
}

type setRepository struct {
	db *gorm.DB
}

func NewSetRepository(db *gorm.DB) SetRepository {
	return &setRepository{db: db}
}

func (r *setRepository) Create(set *model.Set) error {
	return r.db.Create(set).Error
}

func (r *setRepository) FindByID(id string) (*model.Set, error) {
	var set model.Set
	if err := r.db.First(&set, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *setRepository) FindByIDWithContent(id string) (*model.Set, error) {
	var set model.Set
	err := r.db.
		Preload("Cards", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&set, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *setRepository) FindPublished() ([]model.Set, error) {
	var sets []model.Set
	if err := r.db.Where("is_published = ?", true).Order("created_at desc").Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

// FindVisibleTo lists published sets plus the caller's own unpublished ones.
func (r *setRepository) FindVisibleTo(userID string) ([]model.Set, error) {
	var sets []model.Set
	err := r.db.
		Where("is_published = ? OR created_by = ?", true, userID).
		Order("created_at desc").
		Find(&sets).Error
	if err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *setRepository) Update(set *model.Set) error {
	return r.db.Save(set).Error
}

func (r *setRepository) Delete(id string) error {
	return r.db.Delete(&model.Set{}, "id = ?", id).Error
}
