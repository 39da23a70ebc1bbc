package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/senkudev/otaku_shop/internal/hash"
	"github.com/senkudev/otaku_shop/internal/logging"
	"github.com/senkudev/otaku_shop/internal/mailer"
	"github.com/senkudev/otaku_shop/internal/models"
	"github.com/senkudev/otaku_shop/internal/mykafka"
	"github.com/senkudev/otaku_shop/internal/oauth"
	"github.com/senkudev/otaku_shop/internal/repo"
	"github.com/senkudev/otaku_shop/internal/tokens"
)

const (
	accessTokenTTL      = time.Hour
	refreshTokenTTL     = 7 * 24 * time.Hour
	refreshTokenLongTTL = 30 * 24 * time.Hour // rememberMe
	verificationTTL     = 24 * time.Hour
	resetTTL            = time.Hour

	minPasswordLen = 8
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
	Producer      *mykafka.Producer
	Mailer        *mailer.Mailer
	OAuth         *oauth.Client
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	AccessExp    time.Time `json:"access_exp"`
	RefreshExp   time.Time `json:"refresh_exp"`
}

type RegisterInput struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Phone         string
	AcceptedTerms bool
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if !in.AcceptedTerms {
		return nil, fmt.Errorf("%w: terms must be accepted", ErrValidation)
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email required", ErrValidation)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	if in.FirstName == "" || in.LastName == "" {
		return nil, fmt.Errorf("%w: first and last name required", ErrValidation)
	}

	if _, err := s.Repo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	verifyToken, err := tokens.NewOpaqueToken()
	if err != nil {
		return nil, err
	}
	verifyExp := time.Now().Add(verificationTTL)

	user := &models.User{
		Email:                 email,
		PasswordHash:          pwHash,
		FirstName:             in.FirstName,
		LastName:              in.LastName,
		Phone:                 in.Phone,
		Role:                  models.RoleUser,
		Provider:              models.ProviderLocal,
		IsActive:              true,
		VerificationToken:     tokens.Sha256Hex(verifyToken),
		VerificationExpiresAt: &verifyExp,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})
	s.Mailer.SendVerificationEmail(ctx, user.Email, user.FirstName, verifyToken)

	l.Info("user_registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string, rememberMe bool) (*models.User, *TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.Repo.PruneExpiredRefreshTokens(ctx, user.ID); err != nil {
		l.Warn("prune_refresh_failed", "user_id", user.ID, "error", err)
	}

	pair, err := s.issueTokenPair(ctx, user, rememberMe)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("user_logged_in", "user_id", user.ID)
	return user, pair, nil
}

// FederatedLogin creates the user on first sight (verified email, no
// password) and otherwise behaves as Login without a password check.
func (s *AuthService) FederatedLogin(ctx context.Context, provider, providerToken string) (*models.User, *TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.federated_login", "provider", provider)

	profile, err := s.OAuth.FetchProfile(ctx, provider, providerToken)
	if err != nil {
		l.Warn("provider_profile_fetch_failed", "error", err)
		return nil, nil, ErrInvalidToken
	}
	if profile.ProviderID == "" || profile.Email == "" {
		return nil, nil, ErrInvalidToken
	}

	user, err := s.Repo.FindUserByProvider(ctx, profile.Provider, profile.ProviderID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &models.User{
			Email:           profile.Email,
			FirstName:       profile.FirstName,
			LastName:        profile.LastName,
			Avatar:          profile.Avatar,
			Role:            models.RoleUser,
			Provider:        profile.Provider,
			ProviderID:      profile.ProviderID,
			IsEmailVerified: true,
			IsActive:        true,
		}
		if err := s.Repo.CreateUser(ctx, user); err != nil {
			return nil, nil, err
		}
		l.Info("federated_user_created", "user_id", user.ID)
	case err != nil:
		return nil, nil, err
	}

	if !user.IsActive {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user, false)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"provider": provider,
	})

	return user, pair, nil
}

// Refresh rotates the presented refresh token: single use, replay fails.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (*TokenPair, error) {
	if rawToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := tokens.RefreshClaimsFromToken(rawToken, s.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidRefreshToken
	}

	accessExp := time.Now().Add(accessTokenTTL)
	accessToken, err := tokens.SignAccessToken(user.ID, user.Email, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(refreshTokenTTL)
	jti := tokens.NewJTI()
	refreshToken, err := tokens.SignRefreshToken(user.ID, jti, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}

	newRow := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokens.Sha256Hex(refreshToken),
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.RotateRefreshToken(ctx, tokens.Sha256Hex(rawToken), newRow); err != nil {
		if errors.Is(err, repo.ErrRefreshNotFound) || errors.Is(err, repo.ErrRefreshExpired) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// Logout revokes every refresh token the user has; all sessions on all
// devices end. Idempotent.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	return s.Repo.DeleteAllRefreshTokens(ctx, userID)
}

// ForgotPassword never reveals whether the email is registered; the handler
// returns the same generic message either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.forgot_password")

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	resetToken, err := tokens.NewOpaqueToken()
	if err != nil {
		return err
	}
	resetExp := time.Now().Add(resetTTL)
	user.ResetToken = tokens.Sha256Hex(resetToken)
	user.ResetExpiresAt = &resetExp
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return err
	}

	s.Mailer.SendPasswordResetEmail(ctx, user.Email, user.FirstName, resetToken)
	l.Info("reset_token_issued", "user_id", user.ID)
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword, confirmation string) error {
	if newPassword != confirmation {
		return fmt.Errorf("%w: passwords do not match", ErrValidation)
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	if token == "" {
		return ErrInvalidToken
	}

	user, err := s.Repo.FindUserByResetToken(ctx, tokens.Sha256Hex(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if user.ResetExpiresAt == nil || time.Now().After(*user.ResetExpiresAt) {
		return ErrInvalidToken
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = pwHash
	user.ResetToken = ""
	user.ResetExpiresAt = nil
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return err
	}

	// Force re-login everywhere after a password change.
	return s.Repo.DeleteAllRefreshTokens(ctx, user.ID)
}

func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	user, err := s.Repo.FindUserByVerificationToken(ctx, tokens.Sha256Hex(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return ErrInvalidToken
	}

	user.IsEmailVerified = true
	user.VerificationToken = ""
	user.VerificationExpiresAt = nil
	return s.Repo.SaveUser(ctx, user)
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *models.User, rememberMe bool) (*TokenPair, error) {
	accessExp := time.Now().Add(accessTokenTTL)
	accessToken, err := tokens.SignAccessToken(user.ID, user.Email, user.Role, s.JWTSecret, accessExp)
	if err != nil {
		return nil, err
	}

	refreshTTL := refreshTokenTTL
	if rememberMe {
		refreshTTL = refreshTokenLongTTL
	}
	refreshExp := time.Now().Add(refreshTTL)
	jti := tokens.NewJTI()
	refreshToken, err := tokens.SignRefreshToken(user.ID, jti, s.RefreshSecret, refreshExp)
	if err != nil {
		return nil, err
	}

	row := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokens.Sha256Hex(refreshToken),
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}
	if err := s.Repo.AddRefreshToken(ctx, row); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", topic, "error", err)
	}
}
