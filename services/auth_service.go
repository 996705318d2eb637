package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"note-network/config"
	"note-network/models"
	"note-network/repositories"
)

// Claims is the identity embedded in issued tokens.
type Claims struct {
	UserID   uint            `json:"user_id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(req models.RegisterRequest) (*models.User, error)
	Login(req models.LoginRequest) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
	VerifyToken(tokenString string) (*Claims, error)
	GetUserByID(id uint) (*models.User, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	secretKey []byte
}

func NewAuthService(userRepo repositories.UserRepository, secretKey string) AuthService {
	return &authService{userRepo: userRepo, secretKey: []byte(secretKey)}
}

func (s *authService) Register(req models.RegisterRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, models.ErrorValidation{Message: "Role must be poster or jobseeker."}
	}

	// Check both unique columns up front so the caller gets a conflict, not
	// a driver error. The unique indexes still back this up under races.
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, models.ErrorConflict{Message: "An account with this email already exists."}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Error("registration lookup failed")
		return nil, models.ErrorInternalServer{Message: "Internal server error"}
	}

	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, models.ErrorConflict{Message: "An account with this username already exists."}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.WithError(err).Error("registration lookup failed")
		return nil, models.ErrorInternalServer{Message: "Internal server error"}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "Internal server error"}
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
	}

	if err := s.userRepo.Create(user); err != nil {
		log.WithError(err).Error("failed to create user")
		return nil, models.ErrorInternalServer{Message: "Internal server error"}
	}

	log.WithFields(log.Fields{"username": user.Username, "role": user.Role}).Debug("user registered")
	return user, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "Invalid email or password."}
		}
		log.WithError(err).Error("login lookup failed")
		return nil, models.ErrorInternalServer{Message: "Internal server error"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: "Invalid email or password."}
	}

	return user, nil
}

func (s *authService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.JWTExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// VerifyToken checks the signature, signing method and expiry. Every failure
// collapses to Unauthorized; callers never learn which check tripped.
func (s *authService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrorUnauthorized{Message: "Token is invalid!"}
	}

	return claims, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "User not found."}
		}
		log.WithError(err).Error("user lookup failed")
		return nil, models.ErrorInternalServer{Message: "Internal server error"}
	}
	return user, nil
}
