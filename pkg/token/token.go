package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims son los claims estándar JWT del sistema. El token solo transporta la
// identidad estable del usuario (Subject = email) y su expiración; el contexto
// de empresa y rol se resuelve fresco en cada request contra la base de datos,
// nunca viaja dentro del token.
type Claims struct {
	jwt.RegisteredClaims
}

// Issue genera un token JWT firmado (HS256) con subject y ventana de validez.
// Si ttl <= 0 el caller debe haber aplicado ya la ventana por defecto de la configuración.
func Issue(secret, subject, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("token: secret vacío")
	}
	if subject == "" {
		return "", fmt.Errorf("token: subject vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Verify valida firma y expiración y devuelve los claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta;
// los callers traducen cualquier error a un fallo de autenticación uniforme.
func Verify(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("token: secret vacío")
	}
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
