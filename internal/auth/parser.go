package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hsadv/quotes-service/internal/model"
)

type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Parse validates an HS256 access token and extracts the principal claims.
func (p *Parser) Parse(tokenString string) (model.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return model.Principal{}, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return model.Principal{}, fmt.Errorf("invalid token claims")
	}

	principal := model.Principal{}
	if sub, ok := claims["sub"].(string); ok {
		principal.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		principal.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		principal.Role = role
	}
	return principal, nil
}
