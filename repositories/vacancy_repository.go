package repositories

import (
	"note-network/models"

	"gorm.io/gorm"
)

type VacancyRepository interface {
	Create(vacancy *models.Vacancy) error
	GetByID(id uint) (*models.Vacancy, error)
	GetAll() ([]models.Vacancy, error)
}

type vacancyRepository struct {
	db *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) VacancyRepository {
	return &vacancyRepository{db: db}
}

func (r *vacancyRepository) Create(vacancy *models.Vacancy) error {
	return r.db.Create(vacancy).Error
}

func (r *vacancyRepository) GetByID(id uint) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	err := r.db.First(&vacancy, id).Error
	if err != nil {
		return nil, err
	}
	return &vacancy, nil
}

// GetAll returns every vacancy newest first. The id tiebreak keeps the order
// stable when two rows share a timestamp.
func (r *vacancyRepository) GetAll() ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := r.db.Order("created_at desc, id desc").Find(&vacancies).Error
	return vacancies, err
}
