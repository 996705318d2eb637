package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	validator "gopkg.in/go-playground/validator.v9"

	"note-network/helper"
	"note-network/middleware"
	"note-network/models"
	"note-network/services"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
	sessionMode bool
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper, sessionMode bool) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h, sessionMode: sessionMode}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
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

	user, err := h.authService.Register(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Registration successful! Please log in.", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
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

	user, err := h.authService.Login(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	if h.sessionMode {
		session := sessions.Default(c)
		session.Set(middleware.SessionUserKey, user.ID)
		if err := session.Save(); err != nil {
			h.Helper.SendServiceError(c, models.ErrorInternalServer{Message: err.Error()})
			return
		}
		h.Helper.SendSuccess(c, "Logged in successfully.", models.AuthResponse{User: *user})
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		h.Helper.SendServiceError(c, models.ErrorInternalServer{Message: err.Error()})
		return
	}

	h.Helper.SendSuccess(c, "Logged in successfully.", models.AuthResponse{Token: token, User: *user})
}

// Logout only exists in session mode; token-mode clients simply drop the
// token.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		h.Helper.SendServiceError(c, models.ErrorInternalServer{Message: err.Error()})
		return
	}

	h.Helper.SendSuccess(c, "You have been logged out.", h.Helper.EmptyJsonMap())
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		h.Helper.SendUnauthorizedError(c, "Token is missing!", h.Helper.EmptyJsonMap())
		return
	}

	user, err := h.authService.GetUserByID(userID.(uint))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile loaded", user)
}
