package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/patiponrmutl/DASystem/models"
	"github.com/patiponrmutl/DASystem/service"
)

// ApplicationRepository is the gorm-backed implementation of
// service.ApplicationRepo.
type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(app *models.Application) error {
	return r.db.Create(app).Error
}

func (r *ApplicationRepository) FindByID(id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) FindAll(ownerID *uint) ([]models.Application, error) {
	tx := r.db.Model(&models.Application{})
	if ownerID != nil {
		tx = tx.Where("user_id = ?", *ownerID)
	}

	var rows []models.Application
	if err := tx.Order("submission_date DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ApplicationRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Application{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *ApplicationRepository) CountByStatus() (map[models.Status]int64, error) {
	type bucket struct {
		Status models.Status
		Count  int64
	}
	var rows []bucket
	if err := r.db.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[models.Status]int64, len(rows))
	for _, b := range rows {
		out[b.Status] = b.Count
	}
	return out, nil
}

func (r *ApplicationRepository) Update(id uint, changes map[string]any) (*models.Application, error) {
	res := r.db.Model(&models.Application{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, service.ErrNotFound
	}
	return r.FindByID(id)
}
