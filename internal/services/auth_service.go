package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/config"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/mailer"
	"github.com/propdesk/propdesk/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db   *gorm.DB
	cfg  *config.Config
	mail mailer.Enqueuer
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mail mailer.Enqueuer) *AuthService {
	return &AuthService{db: db, cfg: cfg, mail: mail}
}

// Register creates the account and, when a live pending invitation matches
// the email, converts it directly into an active PropertyAccess row. The
// normal pending→accept flow is skipped on this path: registering with the
// invited address is itself the proof of ownership.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			// The unique index on email catches registrations that race
			// past the pre-check above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return s.consumeInvitation(tx, &user, req.InvitationToken)
	})
	if err != nil {
		return nil, err
	}

	s.mail.Enqueue(mailer.Welcome(user.Email, user.FirstName))
	return s.generateTokenPair(&user)
}

// consumeInvitation attaches a pending invitation at signup. With a token
// the match is exact (token and email both); without one the most recently
// issued live invitation for the email wins. Expired rows are ignored and
// left in place.
func (s *AuthService) consumeInvitation(tx *gorm.DB, user *models.User, token string) error {
	now := time.Now().UTC()

	q := tx.Where("email = ? AND expires_at > ?", user.Email, now)
	if token != "" {
		q = q.Where("invitation_token = ?", token)
	}

	var inv models.PendingInvitation
	err := q.Order("created_at DESC").First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	pa := models.PropertyAccess{
		ID:         uuid.New(),
		PropertyID: inv.PropertyID,
		UserID:     user.ID,
		Role:       inv.Role,
		Status:     string(access.StatusActive),
		InvitedBy:  &inv.InvitedBy,
		InvitedAt:  &inv.CreatedAt,
		AcceptedAt: &now,
	}
	if err := tx.Create(&pa).Error; err != nil {
		return err
	}

	slog.Info("pending invitation consumed at registration",
		"user_id", user.ID.String(), "property_id", inv.PropertyID.String(), "role", inv.Role)
	return tx.Delete(&inv).Error
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		if err := s.db.Model(&stored).Update("revoked", true).Error; err != nil {
			return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
		}
		return nil, ErrInvalidToken
	}

	// Single use: rotate on every refresh. The old token must be dead
	// before a new pair is issued.
	if err := s.db.Model(&stored).Update("revoked", true).Error; err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) GetProfile(userID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return userResponse(&user), nil
}

func (s *AuthService) UpdateProfile(userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil && *req.Email != user.Email {
		var other models.User
		if err := s.db.Where("email = ?", *req.Email).First(&other).Error; err == nil {
			return nil, ErrEmailTaken
		}
		updates["email"] = *req.Email
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return userResponse(&user), nil
}

func (s *AuthService) UpdatePassword(userID uuid.UUID, req *dto.UpdatePasswordRequest) error {
	if req.CurrentPassword == "" || len(req.NewPassword) < 8 {
		return errors.New("current password and a new password of at least 8 characters are required")
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.db.Model(&user).Update("password", string(hash)).Error
}

// ForgotPassword always reports success to the caller; whether the email
// exists is not disclosed.
func (s *AuthService) ForgotPassword(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil
	}

	raw := uuid.New().String()
	record := models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(raw),
		ExpiresAt: time.Now().UTC().Add(s.cfg.ResetTokenTTL),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}

	url := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.FrontendURL, raw)
	s.mail.Enqueue(mailer.PasswordReset(user.Email, user.FirstName, url))
	return nil
}

func (s *AuthService) ResetPassword(req *dto.ResetPasswordRequest) error {
	if req.Token == "" || len(req.NewPassword) < 8 {
		return errors.New("token and a new password of at least 8 characters are required")
	}

	var record models.PasswordResetToken
	err := s.db.Where("token_hash = ? AND used = false", hashToken(req.Token)).First(&record).Error
	if err != nil {
		return ErrInvalidResetToken
	}
	if time.Now().After(record.ExpiresAt) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", record.UserID).
			Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&record).Update("used", true).Error
	})
}

// GetSettings creates the row lazily on first read.
func (s *AuthService) GetSettings(userID uuid.UUID) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{
			ID:            uuid.New(),
			UserID:        userID,
			Notifications: datatypes.JSON([]byte(`{}`)),
			Appearance:    datatypes.JSON([]byte(`{}`)),
		}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *AuthService) UpdateSettings(userID uuid.UUID, req *dto.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Notifications != nil {
		b, err := json.Marshal(req.Notifications)
		if err != nil {
			return nil, err
		}
		updates["notifications"] = datatypes.JSON(b)
	}
	if req.Appearance != nil {
		b, err := json.Marshal(req.Appearance)
		if err != nil {
			return nil, err
		}
		updates["appearance"] = datatypes.JSON(b)
	}

	if len(updates) > 0 {
		if err := s.db.Model(settings).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return settings, nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *userResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func userResponse(user *models.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
	}
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
