package utils

import (
	"errors"
	"time"

	"docassist/config"

	"github.com/golang-jwt/jwt"
)

// Token types carried in the "typ" claim so a reset token can never be
// replayed as an access token.
const (
	TokenTypeAccess = "access"
	TokenTypeReset  = "reset"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "docassist-dev-secret"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT access token carrying the user's id,
// email and role. The token expires after the specified duration.
func GenerateToken(subject, email, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  role,
		"typ":   TokenTypeAccess,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// GenerateResetToken creates a short-lived token for password resets.
func GenerateResetToken(subject string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"typ": TokenTypeReset,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// TokenClaims extracts the claims of a valid token of the expected type.
func TokenClaims(tokenString, expectedType string) (jwt.MapClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if typ, _ := claims["typ"].(string); typ != expectedType {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}

// ExtractIDFromToken extracts the subject from a valid access token.
func ExtractIDFromToken(tokenString string) (string, error) {
	claims, err := TokenClaims(tokenString, TokenTypeAccess)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token does not contain a valid 'sub' claim")
	}
	return sub, nil
}
