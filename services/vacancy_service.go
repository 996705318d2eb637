package services

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"note-network/models"
	"note-network/notifier"
	"note-network/repositories"
)

type VacancyService interface {
	Create(posterID uint, req models.PostVacancyRequest) (*models.Vacancy, error)
	List() ([]models.Vacancy, error)
	Get(id uint) (*models.Vacancy, error)
	Apply(vacancyID uint, message string) error
}

type vacancyService struct {
	vacancyRepo repositories.VacancyRepository
	notifier    notifier.Notifier
}

func NewVacancyService(vacancyRepo repositories.VacancyRepository, n notifier.Notifier) VacancyService {
	return &vacancyService{vacancyRepo: vacancyRepo, notifier: n}
}

func (s *vacancyService) Create(posterID uint, req models.PostVacancyRequest) (*models.Vacancy, error) {
	if strings.TrimSpace(req.Title) == "" ||
		strings.TrimSpace(req.Description) == "" ||
		strings.TrimSpace(req.SchoolName) == "" {
		return nil, models.ErrorValidation{Message: "Missing required fields."}
	}

	vacancy := &models.Vacancy{
		Title:       req.Title,
		Description: req.Description,
		SchoolName:  req.SchoolName,
		UserID:      posterID,
	}

	if err := s.vacancyRepo.Create(vacancy); err != nil {
		log.WithError(err).Error("failed to create vacancy")
		return nil, models.ErrorInternalServer{Message: "Internal server error"}
	}

	return vacancy, nil
}

func (s *vacancyService) List() ([]models.Vacancy, error) {
	vacancies, err := s.vacancyRepo.GetAll()
	if err != nil {
		log.WithError(err).Error("failed to list vacancies")
		return nil, models.ErrorInternalServer{Message: "Internal server error"}
	}
	return vacancies, nil
}

func (s *vacancyService) Get(id uint) (*models.Vacancy, error) {
	vacancy, err := s.vacancyRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "Vacancy not found."}
		}
		log.WithError(err).Error("failed to fetch vacancy")
		return nil, models.ErrorInternalServer{Message: "Internal server error"}
	}
	return vacancy, nil
}

// Apply validates the application and hands the message to the notifier.
// Nothing is stored; delivery is the collaborator's problem.
func (s *vacancyService) Apply(vacancyID uint, message string) error {
	vacancy, err := s.Get(vacancyID)
	if err != nil {
		return err
	}

	if strings.TrimSpace(message) == "" {
		return models.ErrorValidation{Message: "Message is required."}
	}

	subject := fmt.Sprintf("application for vacancy %d (%s)", vacancy.ID, vacancy.Title)
	if err := s.notifier.Notify(subject, message); err != nil {
		log.WithError(err).Error("failed to notify poster")
		return models.ErrorInternalServer{Message: "Internal server error"}
	}

	return nil
}
