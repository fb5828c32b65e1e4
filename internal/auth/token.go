package auth

import (
	"fmt"
	"time"

	"github.com/avoronova/go-todo-planner/internal/apperrors"
	"github.com/avoronova/go-todo-planner/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// tokens expire after 7 days
const tokenTTL = 7 * 24 * time.Hour

// Claims is the identity a verified token proves.
type Claims struct {
	UserID   int64
	Username string
	Email    string
}

func (s *Service) generateToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"exp":      time.Now().Add(tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the embedded identity.
func (s *Service) VerifyToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.Auth("missing token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Auth("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["sub"] == nil {
		return nil, apperrors.Auth("invalid token")
	}
	// json numbers decode as float64
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, apperrors.Auth("invalid token")
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)

	return &Claims{UserID: int64(sub), Username: username, Email: email}, nil
}
