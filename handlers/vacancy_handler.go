package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	validator "gopkg.in/go-playground/validator.v9"

	"note-network/helper"
	"note-network/models"
	"note-network/services"
)

type VacancyHandler struct {
	vacancyService services.VacancyService
	Helper         *helper.HTTPHelper
}

func NewVacancyHandler(vacancyService services.VacancyService, h *helper.HTTPHelper) *VacancyHandler {
	return &VacancyHandler{vacancyService: vacancyService, Helper: h}
}

func (h *VacancyHandler) GetVacancies(c *gin.Context) {
	vacancies, err := h.vacancyService.List()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Vacancies loaded", models.VacancyListResponse{Vacancies: vacancies})
}

func (h *VacancyHandler) GetVacancy(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		// non-numeric ids fall through to the same answer a missing row gets
		h.Helper.SendNotFoundError(c, "Vacancy not found.", h.Helper.EmptyJsonMap())
		return
	}

	vacancy, err := h.vacancyService.Get(uint(id))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Vacancy loaded", vacancy)
}

func (h *VacancyHandler) PostVacancy(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		h.Helper.SendUnauthorizedError(c, "Token is missing!", h.Helper.EmptyJsonMap())
		return
	}

	var req models.PostVacancyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Missing required fields.", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		h.Helper.SendBadRequest(c, "Missing required fields.", h.Helper.EmptyJsonMap())
		return
	}

	vacancy, err := h.vacancyService.Create(userID.(uint), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Vacancy posted successfully.", vacancy)
}

// Connect records a jobseeker's interest in a vacancy. The vacancy check
// runs before the message check, so a missing vacancy answers 404 even when
// the body is empty.
func (h *VacancyHandler) Connect(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("vacancy_id"), 10, 64)
	if err != nil {
		h.Helper.SendNotFoundError(c, "Vacancy not found.", h.Helper.EmptyJsonMap())
		return
	}

	var req models.ConnectRequest
	// a missing or malformed body is the same as an empty message; the
	// service decides whether that matters
	_ = c.ShouldBindJSON(&req)

	if err := h.vacancyService.Apply(uint(id), req.Message); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Your application has been sent to the school.", h.Helper.EmptyJsonMap())
}
