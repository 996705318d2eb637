package models

type RegisterRequest struct {
	Username string   `json:"username" validate:"required,min=3,max=50"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     UserRole `json:"role" validate:"required,oneof=poster jobseeker"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token,omitempty"`
	User  User   `json:"user"`
}

type PostVacancyRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"required"`
	SchoolName  string `json:"school_name" validate:"required,min=1,max=255"`
}

type ConnectRequest struct {
	Message string `json:"message" validate:"required"`
}

type VacancyListResponse struct {
	Vacancies []Vacancy `json:"vacancies"`
}
