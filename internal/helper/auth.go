package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
	"github.com/gofiber/fiber/v2"
)

// AuthUser is what the auth middleware stores in fiber locals.
type AuthUser struct {
	UserID    uint
	ProfileID uint
	Email     string
	ExpiresAt time.Time
}

type Auth struct {
	codec TokenCodec
	ttl   time.Duration
}

func SetupAuth(codec TokenCodec, ttl time.Duration) Auth {
	return Auth{codec: codec, ttl: ttl}
}

func (a Auth) GenerateToken(userID, profileID uint, email string) (string, error) {
	if userID == 0 || email == "" {
		return "", errors.New("required inputs are missing to generate token")
	}
	return a.codec.Encode(Claims{
		Purpose:   PurposeAccess,
		UserID:    userID,
		ProfileID: profileID,
		Email:     email,
	}, a.ttl)
}

// VerifyToken accepts both "Bearer <token>" and a bare token.
func (a Auth) VerifyToken(tokenString string) (AuthUser, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return AuthUser{}, errors.New("missing token")
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return AuthUser{}, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	claims, err := a.codec.Decode(tokenString, PurposeAccess)
	if err != nil {
		if errors.Is(err, domain.ErrExpiredToken) {
			return AuthUser{}, errors.New("token expired")
		}
		return AuthUser{}, errors.New("invalid token")
	}
	if claims.UserID == 0 || claims.ProfileID == 0 {
		return AuthUser{}, errors.New("invalid token claims")
	}

	return AuthUser{
		UserID:    claims.UserID,
		ProfileID: claims.ProfileID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (a Auth) GetCurrentUser(ctx *fiber.Ctx) (AuthUser, error) {
	user, ok := ctx.Locals("user").(AuthUser)
	if !ok {
		return AuthUser{}, errors.New("missing auth user in context")
	}
	return user, nil
}
