package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kellan/jobwire/internal/core/domain"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
)

// Claims defines the structured data carried in platform JWTs. Field names
// match the tokens minted by the platform's auth service.
type Claims struct {
	UserID    uuid.UUID        `json:"userId"`
	Email     string           `json:"email"`
	Role      domain.Role      `json:"role"`
	TokenType domain.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager verifies (and, for tests and tooling, mints) platform JWTs.
type TokenManager struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:  []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken creates a new JWT of the access class.
func (tm *TokenManager) GenerateAccessToken(userID uuid.UUID, email string, role domain.Role) (string, error) {
	return tm.generate(userID, email, role, domain.TokenAccess, tm.accessTTL)
}

// GenerateRefreshToken creates a new JWT of the refresh class. The gateway
// never accepts these; they exist so the token lifecycle can be exercised
// end to end.
func (tm *TokenManager) GenerateRefreshToken(userID uuid.UUID, email string, role domain.Role) (string, error) {
	return tm.generate(userID, email, role, domain.TokenRefresh, tm.refreshTTL)
}

func (tm *TokenManager) generate(userID uuid.UUID, email string, role domain.Role, kind domain.TokenKind, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   userID.String(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

// Verify parses and validates the token string: signature, expiry and
// signing method. It does not care about the token class; callers that
// require an access token check TokenKind themselves.
func (tm *TokenManager) Verify(tokenString string) (*domain.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	return &domain.TokenClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      claims.Role,
		TokenKind: claims.TokenType,
	}, nil
}
