package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const ValidadePadrao = 24 * time.Hour

var ErrSegredoVazio = errors.New("JWT_SECRET não definida")

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// Tokens emite e valida JWT HS256.
type Tokens struct {
	secret   []byte
	validade time.Duration
	agora    func() time.Time
}

// NewTokens cria o emissor; validade <= 0 usa 24h.
func NewTokens(secret string, validade time.Duration) (*Tokens, error) {
	if secret == "" {
		return nil, ErrSegredoVazio
	}
	if validade <= 0 {
		validade = ValidadePadrao
	}
	return &Tokens{secret: []byte(secret), validade: validade, agora: time.Now}, nil
}

// GerarToken gera um JWT com validade configurada (24h por omissão)
func (t *Tokens) GerarToken(userID, email string, role Role) (string, error) {
	now := t.agora()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.validade)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidarToken valida o token e retorna as claims
func (t *Tokens) ValidarToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.agora),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, fmt.Errorf("não foi possível extrair claims")
	}
	return claims, nil
}

// TokenExpirado distingue expiração de outras falhas de validação.
func TokenExpirado(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
