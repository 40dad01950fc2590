package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/chessnerd435/study-app/config"
	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"
	"github.com/chessnerd435/study-app/internal/repository"
	"github.com/chessnerd435/study-app/pkg/jwt"
	"github.com/chessnerd435/study-app/pkg/password"
	"github.com/chessnerd435/study-app/pkg/validator"

	"github.com/google/uuid"
)

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"

	// DefaultDisplayName is the fallback when neither a provider name
	// nor an email local part is available.
	DefaultDisplayName = "Learner"
)

type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	TouchLastActive(ctx context.Context, id string) error
	AddXP(ctx context.Context, id string, amount int) (int, error)
}

type TokenStore interface {
	AddToBlacklist(ctx context.Context, jti string) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
	SaveRefreshToken(ctx context.Context, token *repository.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*repository.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// AuthService owns identity and profile state: sign-up/sign-in for
// both providers, token rotation, the load-or-create profile pass and
// the experience mutation.
type AuthService struct {
	profiles   ProfileStore
	tokens     TokenStore
	publisher  EventPublisher
	httpClient *http.Client

	jwtSecret          string
	googleClientID     string
	googleTokenInfoURL string
}

func NewAuthService(profiles ProfileStore, tokens TokenStore, publisher EventPublisher, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		profiles:           profiles,
		tokens:             tokens,
		publisher:          publisher,
		httpClient:         &http.Client{Timeout: 5 * time.Second},
		jwtSecret:          cfg.JWTSecret,
		googleClientID:     cfg.GoogleClientID,
		googleTokenInfoURL: cfg.GoogleTokenInfoURL,
	}
}

func (s *AuthService) SignUp(ctx context.Context, email, rawPassword string) (*models.Profile, *jwt.TokenPair, error) {
	email = validator.NormalizeEmail(email)
	if err := validator.ValidateEmail(email); err != nil {
		return nil, nil, apperrors.NewValidationError(0, err.Error())
	}
	if err := validator.ValidatePassword(rawPassword); err != nil {
		return nil, nil, apperrors.NewValidationError(0, err.Error())
	}

	hash, err := password.Hash(rawPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	profile := defaultProfile(email, "", ProviderPassword)
	profile.PasswordHash = hash

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	publishEvent(ctx, s.publisher, QueueUserSignedUp, map[string]any{
		"user_id":      profile.ID,
		"email":        profile.Email,
		"display_name": profile.DisplayName,
	})

	return profile, tokens, nil
}

func (s *AuthService) SignIn(ctx context.Context, email, rawPassword string) (*models.Profile, *jwt.TokenPair, error) {
	email = validator.NormalizeEmail(email)

	profile, err := s.profiles.GetByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}

	if !password.Verify(rawPassword, profile.PasswordHash) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if err := s.profiles.TouchLastActive(ctx, profile.ID); err != nil {
		log.Printf("Failed to touch last_active for %s: %v", profile.ID, err)
	}

	tokens, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	return profile, tokens, nil
}

// googleTokenInfo is the relevant subset of the tokeninfo response.
type googleTokenInfo struct {
	Aud   string `json:"aud"`
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SignInGoogle verifies a Google ID token against the provider's
// tokeninfo endpoint and signs the holder in, creating a profile on
// first sight of the email.
func (s *AuthService) SignInGoogle(ctx context.Context, idToken string) (*models.Profile, *jwt.TokenPair, error) {
	info, err := s.verifyGoogleToken(ctx, idToken)
	if err != nil {
		log.Printf("Google token verification failed: %v", err)
		return nil, nil, apperrors.ErrGoogleVerification
	}

	email := validator.NormalizeEmail(info.Email)
	if err := validator.ValidateEmail(email); err != nil {
		return nil, nil, apperrors.ErrGoogleVerification
	}

	profile, err := s.loadOrCreateProfile(ctx, email, info.Name, ProviderGoogle)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, nil, err
	}

	return profile, tokens, nil
}

func (s *AuthService) verifyGoogleToken(ctx context.Context, idToken string) (*googleTokenInfo, error) {
	endpoint := fmt.Sprintf("%s?id_token=%s", s.googleTokenInfoURL, url.QueryEscape(idToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tokeninfo returned status %d", resp.StatusCode)
	}

	info := &googleTokenInfo{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if s.googleClientID != "" && info.Aud != s.googleClientID {
		return nil, fmt.Errorf("token audience mismatch")
	}

	return info, nil
}

// RefreshTokens rotates a refresh token: the old one is invalidated
// and a new pair is issued.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	stored, err := s.tokens.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.tokens.DeleteRefreshToken(ctx, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
		log.Printf("Failed to delete old refresh token: %v", err)
	}

	profile, err := s.profiles.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	return s.issueTokens(ctx, profile)
}

// SignOut revokes the access token's JTI and drops the refresh token.
func (s *AuthService) SignOut(ctx context.Context, accessToken, refreshToken string) error {
	jti, err := jwt.ExtractJTI(accessToken)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	if err := s.tokens.AddToBlacklist(ctx, jti); err != nil {
		log.Printf("Failed to blacklist token: %v", err)
	}

	if refreshToken != "" {
		if err := s.tokens.DeleteRefreshToken(ctx, refreshToken); err != nil {
			log.Printf("Failed to delete refresh token: %v", err)
		}
	}

	return nil
}

// LoadProfile re-runs the load-or-create pass for the authenticated
// identity and stamps last_active on existing profiles.
func (s *AuthService) LoadProfile(ctx context.Context, userID, email string) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		return s.loadOrCreateProfile(ctx, email, "", ProviderPassword)
	}
	if err != nil {
		return nil, err
	}

	if err := s.profiles.TouchLastActive(ctx, profile.ID); err != nil {
		log.Printf("Failed to touch last_active for %s: %v", profile.ID, err)
	}

	return profile, nil
}

// AwardXP is a no-op for anonymous users.
func (s *AuthService) AwardXP(ctx context.Context, userID string, amount int) (int, error) {
	if userID == "" {
		return 0, nil
	}
	return s.profiles.AddXP(ctx, userID, amount)
}

func (s *AuthService) IsTokenBlacklisted(ctx context.Context, jti string) (bool, error) {
	return s.tokens.IsBlacklisted(ctx, jti)
}

func (s *AuthService) loadOrCreateProfile(ctx context.Context, email, displayName, provider string) (*models.Profile, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err == nil {
		if err := s.profiles.TouchLastActive(ctx, profile.ID); err != nil {
			log.Printf("Failed to touch last_active for %s: %v", profile.ID, err)
		}
		return profile, nil
	}
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		return nil, err
	}

	profile = defaultProfile(email, displayName, provider)

	if err := s.profiles.Create(ctx, profile); err != nil {
		// Lost race with a concurrent first sign-in: fall back to read.
		if errors.Is(err, apperrors.ErrEmailTaken) {
			return s.profiles.GetByEmail(ctx, email)
		}
		return nil, err
	}

	publishEvent(ctx, s.publisher, QueueUserSignedUp, map[string]any{
		"user_id":      profile.ID,
		"email":        profile.Email,
		"display_name": profile.DisplayName,
	})

	return profile, nil
}

// defaultProfile builds the zero-experience profile created on first
// sign-in: display name from the provider, then the email local part,
// then a fixed label.
func defaultProfile(email, displayName, provider string) *models.Profile {
	if displayName == "" {
		displayName = validator.LocalPart(email)
	}
	if displayName == "" {
		displayName = DefaultDisplayName
	}

	return &models.Profile{
		ID:          uuid.New().String(),
		Email:       email,
		DisplayName: displayName,
		Provider:    provider,
	}
}

func (s *AuthService) issueTokens(ctx context.Context, profile *models.Profile) (*jwt.TokenPair, error) {
	tokens, err := jwt.GenerateTokenPair(profile.ID, profile.Email, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	refresh := repository.NewRefreshToken(tokens.RefreshToken, profile.ID, time.Now().Add(jwt.RefreshTokenDuration), time.Now())
	if err := s.tokens.SaveRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return tokens, nil
}
