package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Erros específicos
var (
	ErrInvalidToken  = errors.New("token inválido")
	ErrExpiredToken  = errors.New("token expirado")
	ErrInvalidClaims = errors.New("claims inválidas")
	ErrMissingJWTKey = errors.New("chave secreta JWT não configurada")
)

// JWTClaims representa as claims do token emitido para o barbeiro
type JWTClaims struct {
	BarberID string `json:"barber_id"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTService valida tokens JWT assinados com HS256
type JWTService struct {
	secretKey []byte
	issuer    string
}

// NewJWTService cria uma nova instância de JWTService. Issuer vazio aceita qualquer emissor.
func NewJWTService(secretKey, issuer string) (*JWTService, error) {
	if secretKey == "" {
		return nil, ErrMissingJWTKey
	}
	return &JWTService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}, nil
}

// GenerateToken gera um token para o barbeiro; usado em ferramentas locais e testes
func (s *JWTService) GenerateToken(barberID, name string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		BarberID: barberID,
		Name:     name,
		Role:     "barber",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   barberID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken valida um token JWT e retorna as claims se for válido
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	if claims.BarberID == "" {
		// tokens antigos trazem o barbeiro apenas no subject
		claims.BarberID = claims.Subject
	}
	if claims.BarberID == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}
