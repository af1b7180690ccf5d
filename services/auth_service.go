package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"reservation-backend/models"
	"reservation-backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
	ErrTokenInvalid       = errors.New("token_invalid")
)

const (
	tokenTTL      = 60 * time.Minute
	resetTokenTTL = 1 * time.Hour
)

// Claims carried inside access tokens.
type Claims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
}

// AuthService manages user accounts and access tokens. Tokens are HS256
// JWTs; when a Redis client is configured, logout puts the token id on a
// revocation list checked during verification.
type AuthService struct {
	DB  *gorm.DB
	rdb *redis.Client

	signer   jwt.Signer
	verifier jwt.Verifier
}

func NewAuthService(db *gorm.DB, rdb *redis.Client, secret []byte) (*AuthService, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, secret)
	if err != nil {
		return nil, err
	}
	verifier, err := jwt.NewVerifierHS(jwt.HS256, secret)
	if err != nil {
		return nil, err
	}
	return &AuthService{DB: db, rdb: rdb, signer: signer, verifier: verifier}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a regular (non-admin) account.
func (s *AuthService) Register(fullName, email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		FullName: strings.TrimSpace(fullName),
		Email:    normalizeEmail(email),
		Password: string(hash),
		Role:     models.RoleUser,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if IsDuplicateKey(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// Login checks credentials and issues an access token.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

func (s *AuthService) issueToken(user models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID: user.ID,
		Role:   user.Role,
	}

	token, err := jwt.NewBuilder(s.signer).Build(claims)
	if err != nil {
		return "", err
	}
	return token.String(), nil
}

// VerifyToken checks signature, expiry and the revocation list, returning
// the actor the token represents.
func (s *AuthService) VerifyToken(ctx context.Context, raw string) (ActorContext, error) {
	token, err := jwt.Parse([]byte(raw), s.verifier)
	if err != nil {
		return ActorContext{}, ErrTokenInvalid
	}

	var claims Claims
	if err := json.Unmarshal(token.Claims(), &claims); err != nil {
		return ActorContext{}, ErrTokenInvalid
	}
	if !claims.IsValidAt(time.Now()) {
		return ActorContext{}, ErrTokenInvalid
	}

	if s.rdb != nil && claims.ID != "" {
		revoked, err := s.rdb.Exists(ctx, revocationKey(claims.ID)).Result()
		if err == nil && revoked > 0 {
			return ActorContext{}, ErrTokenInvalid
		}
	}

	return ActorContext{UserID: claims.UserID, Role: claims.Role}, nil
}

// Logout revokes the token until it would have expired anyway. Without
// Redis configured this is a no-op and tokens simply age out.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if s.rdb == nil {
		return nil
	}

	token, err := jwt.Parse([]byte(raw), s.verifier)
	if err != nil {
		return ErrTokenInvalid
	}
	var claims Claims
	if err := json.Unmarshal(token.Claims(), &claims); err != nil || claims.ID == "" {
		return ErrTokenInvalid
	}

	ttl := tokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
		if ttl <= 0 {
			return nil
		}
	}
	return s.rdb.Set(ctx, revocationKey(claims.ID), "revoked", ttl).Err()
}

func revocationKey(jti string) string { return "revoked:" + jti }

// ForgotPassword stores a one-time reset token on the account and returns
// it. Delivering the token to the user (email) is outside this service.
func (s *AuthService) ForgotPassword(email string) (string, error) {
	var user models.User
	if err := s.DB.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	token, err := utils.GenerateSecureToken(24)
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(resetTokenTTL)
	if err := s.DB.Model(&user).Updates(map[string]interface{}{
		"reset_token":         token,
		"reset_token_expires": expires,
	}).Error; err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword exchanges a valid reset token for a new password and clears
// the token.
func (s *AuthService) ResetPassword(email, token, newPassword string) error {
	var user models.User
	if err := s.DB.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenInvalid
		}
		return err
	}

	if user.ResetToken == nil || *user.ResetToken != token {
		return ErrTokenInvalid
	}
	if user.ResetTokenExpires == nil || time.Now().After(*user.ResetTokenExpires) {
		return ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.DB.Model(&user).Updates(map[string]interface{}{
		"password":            string(hash),
		"reset_token":         nil,
		"reset_token_expires": nil,
	}).Error
}
