package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken indica que no hay credencial válida y no se pudo renovar
var ErrNoToken = errors.New("credencial no disponible o expirada")

// RefreshFunc obtiene una credencial nueva del proveedor de identidad
type RefreshFunc func(ctx context.Context) (string, error)

// TokenSource mantiene la credencial bearer usada para operar contra el
// almacén en nombre del sistema. Renueva de forma reactiva cuando detecta
// expiración y de forma proactiva vía el job periódico que llama a Refresh.
// Nunca entrega un token que ya se sabe expirado.
type TokenSource struct {
	mu      sync.Mutex
	token   string
	refresh RefreshFunc
	now     func() time.Time
}

func NewTokenSource(refresh RefreshFunc) *TokenSource {
	return &TokenSource{
		refresh: refresh,
		now:     time.Now,
	}
}

// Token devuelve la credencial vigente, renovándola si falta o expiró
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && !t.isExpired(t.token) {
		return t.token, nil
	}

	return t.refreshLocked(ctx)
}

// Refresh fuerza una renovación (usado por el job proactivo de 45 minutos)
func (t *TokenSource) Refresh(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, err := t.refreshLocked(ctx)
	return err
}

func (t *TokenSource) refreshLocked(ctx context.Context) (string, error) {
	token, err := t.refresh(ctx)
	if err != nil {
		t.token = ""
		return "", fmt.Errorf("%w: %v", ErrNoToken, err)
	}
	if token == "" || t.isExpired(token) {
		t.token = ""
		return "", ErrNoToken
	}

	t.token = token
	return token, nil
}

// isExpired revisa el claim exp sin verificar la firma; un token que no se
// puede parsear se trata como expirado
func (t *TokenSource) isExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	// Margen de 30 segundos para no usar tokens al borde de expirar
	return !exp.After(t.now().Add(30 * time.Second))
}
