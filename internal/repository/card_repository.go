package repository

import (
	"github.com/fquiz/fquiz/internal/model"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(card *model.Card) error
	CreateBatch(cards []model.Card) error
	FindByID(id string) (*model.Card, error)
	FindBySetID(setID string) ([]model.Card, error)
	Update(card *model.Card) error
	Delete(id string) error
}

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(card *model.Card) error {
	return r.db.Create(card).Error
}

// CreateBatch inserts all cards in one statement so a failure leaves none
// behind.
func (r *cardRepository) CreateBatch(cards []model.Card) error {
	if len(cards) == 0 {
		return nil
	}
	return r.db.Create(&cards).Error
}

func (r *cardRepository) FindByID(id string) (*model.Card, error) {
	var card model.Card
	if err := r.db.First(&card, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) FindBySetID(setID string) ([]model.Card, error) {
	var cards []model.Card
	if err := r.db.Where("set_id = ?", setID).Order("created_at ASC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) Update(card *model.Card) error {
	return r.db.Save(card).Error
}

func (r *cardRepository) Delete(id string) error {
	return r.db.Delete(&model.Card{}, "id = ?", id).Error
}
