package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"formhub/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	tokenTTL  time.Duration
	mailer    Mailer
	baseURL   string // verification links are built against the API base
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTLHours int, mailer Mailer, baseURL string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		tokenTTL:  time.Duration(tokenTTLHours) * time.Hour,
		mailer:    mailer,
		baseURL:   baseURL,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an unverified owner account and mails a verification link.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrBadRequest)
	}

	if !passwordIsValid(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrForbidden)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:             req.Email,
		Password:          string(hashed),
		Role:              models.RoleAdmin,
		VerificationToken: uuid.New().String(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	link := s.baseURL + "/api/auth/verify?token=" + user.VerificationToken
	if err := s.mailer.Send(user.Email, "Confirm your registration", verificationEmailBody(link)); err != nil {
		// Account stays usable; the user can request the link again by re-registering
		// once the pending account is cleaned up.
		log.Printf("Failed to send verification mail to %s: %v", user.Email, err)
	}

	return &user, nil
}

// RegisterRespondent creates a verified respondent account and logs it in
// immediately, so someone invited to answer a private form can get a token
// in one step.
func (s *AuthService) RegisterRespondent(req *RegisterRequest) (string, error) {
	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return "", fmt.Errorf("%w: user already exists", ErrBadRequest)
	}

	if !passwordIsValid(req.Password) {
		return "", fmt.Errorf("%w: password must be at least 8 characters", ErrForbidden)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashed),
		Role:     models.RoleRespondent,
		Verified: true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return "", err
	}

	return s.generateToken(&user)
}

func (s *AuthService) Login(req *LoginRequest) (string, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return "", nil, err
	}

	if !user.Verified {
		return "", nil, fmt.Errorf("%w: email not verified", ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return "", nil, err
	}
	return token, &user, nil
}

// Verify activates the account matching a verification token.
func (s *AuthService) Verify(token string) error {
	var user models.User
	if err := s.db.Where("verification_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid verification token", ErrBadRequest)
		}
		return err
	}

	user.Verified = true
	user.VerificationToken = ""
	if err := s.db.Save(&user).Error; err != nil {
		return err
	}

	if err := s.mailer.Send(user.Email, "Email verified successfully", verifiedEmailBody()); err != nil {
		log.Printf("Failed to send confirmation mail to %s: %v", user.Email, err)
	}
	return nil
}

func (s *AuthService) GetProfile(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"uid":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func passwordIsValid(password string) bool {
	return len(password) >= 8
}
