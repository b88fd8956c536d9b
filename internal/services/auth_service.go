package services

import (
	"github.com/sirupsen/logrus"
	"github.com/travelgo/tour-booking-backend/internal/apperrors"
	"github.com/travelgo/tour-booking-backend/internal/database"
	"github.com/travelgo/tour-booking-backend/internal/models"
	"github.com/travelgo/tour-booking-backend/internal/utils"
	"github.com/travelgo/tour-booking-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// TokenPair holds a freshly issued access and refresh token
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles account registration and credential verification. It
// issues the tokens the booking core later consumes as a principal.
type AuthService struct {
	userStore  database.UserStore
	jwtService *jwt.Service
	bcryptCost int
	logger     *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore database.UserStore, jwtService *jwt.Service, bcryptCost int, logger *logrus.Logger) *AuthService {
	return &AuthService{
		userStore:  userStore,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Signup registers a new account with the USER role
func (s *AuthService) Signup(req *models.SignupRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.userStore.ExistsByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.InvalidArgument("username is already taken")
	}

	taken, err = s.userStore.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.InvalidArgument("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Roles:        models.StringArray{models.RoleUser},
	}

	if err := s.userStore.Create(user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User registered")

	return user, nil
}

// Login verifies the credentials and issues a token pair. The device summary
// parsed from the User-Agent header is recorded on the account. Unknown
// usernames and bad passwords are indistinguishable to the caller.
func (s *AuthService) Login(req *models.LoginRequest, userAgent string) (*models.User, *TokenPair, error) {
	user, err := s.userStore.GetByUsername(req.Username)
	if apperrors.IsKind(err, apperrors.KindNotFound) {
		return nil, nil, apperrors.Unauthenticated("invalid username or password")
	}
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		s.logger.WithFields(logrus.Fields{
			"username": req.Username,
		}).Warn("Login failed: bad password")
		return nil, nil, apperrors.Unauthenticated("invalid username or password")
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, nil, err
	}
	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return nil, nil, err
	}

	device := utils.DeviceSummary(userAgent)
	if err := s.userStore.RecordLogin(user.ID, device); err != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id": user.ID,
			"error":   err,
		}).Warn("Failed to record login device")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
		"device":   device,
	}).Info("User logged in")

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
