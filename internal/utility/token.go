package utility

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	ErrInvalidToken = errors.New("token is not valid")
	ErrExpiredToken = errors.New("token expired")
)

// SignedDetails is the claim set carried by every access token.
type SignedDetails struct {
	Uid  string `json:"uid"`
	Role string `json:"role"`
	jwt.StandardClaims
}

// TokenMaker issues and verifies HS256 access tokens.
type TokenMaker struct {
	secretKey []byte
	expiry    time.Duration
}

func NewTokenMaker(secret string, expiry time.Duration) *TokenMaker {
	return &TokenMaker{secretKey: []byte(secret), expiry: expiry}
}

func (m *TokenMaker) GenerateToken(userID, role string) (string, error) {
	claims := &SignedDetails{
		Uid:  userID,
		Role: role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(m.expiry).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
}

func (m *TokenMaker) ValidateToken(signedToken string) (*SignedDetails, error) {
	token, err := jwt.ParseWithClaims(signedToken, &SignedDetails{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})
	if err != nil {
		if verr, ok := err.(*jwt.ValidationError); ok && verr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt < time.Now().Unix() {
		return nil, ErrExpiredToken
	}
	return claims, nil
}
