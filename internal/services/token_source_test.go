package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "system",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("clave-de-prueba"))
	if err != nil {
		t.Fatalf("no se pudo firmar el token: %v", err)
	}
	return signed
}

func TestTokenSourceReusesValidToken(t *testing.T) {
	calls := 0
	source := NewTokenSource(func(ctx context.Context) (string, error) {
		calls++
		return signedToken(t, time.Now().Add(time.Hour)), nil
	})

	first, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	second, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}

	if first != second {
		t.Errorf("el token vigente debe reutilizarse, no renovarse")
	}
	if calls != 1 {
		t.Errorf("refresh fue llamado %d veces, want 1", calls)
	}
}

func TestTokenSourceRenewsExpiredToken(t *testing.T) {
	calls := 0
	source := NewTokenSource(func(ctx context.Context) (string, error) {
		calls++
		return signedToken(t, time.Now().Add(time.Hour)), nil
	})

	// Sembrar un token ya vencido; la siguiente lectura debe renovarlo
	source.token = signedToken(t, time.Now().Add(-time.Minute))

	token, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token == "" || calls != 1 {
		t.Errorf("token = %q, calls = %d; se esperaba renovación", token, calls)
	}
}

func TestTokenSourceExpiryLeeway(t *testing.T) {
	source := NewTokenSource(nil)

	// Un token a punto de expirar cuenta como expirado
	if !source.isExpired(signedToken(t, time.Now().Add(10*time.Second))) {
		t.Errorf("un token al borde de expirar debe tratarse como expirado")
	}
	if source.isExpired(signedToken(t, time.Now().Add(5*time.Minute))) {
		t.Errorf("un token con margen amplio no debe tratarse como expirado")
	}
	if !source.isExpired("no-es-un-jwt") {
		t.Errorf("un token que no se puede parsear debe tratarse como expirado")
	}
}

func TestTokenSourceRefreshFailure(t *testing.T) {
	source := NewTokenSource(func(ctx context.Context) (string, error) {
		return "", errors.New("proveedor caído")
	})

	_, err := source.Token(context.Background())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("Token() error = %v, want ErrNoToken", err)
	}
}

func TestTokenSourceRejectsExpiredRenewal(t *testing.T) {
	source := NewTokenSource(func(ctx context.Context) (string, error) {
		return signedToken(t, time.Now().Add(-time.Hour)), nil
	})

	if err := source.Refresh(context.Background()); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Refresh() error = %v, want ErrNoToken", err)
	}
	if _, err := source.Token(context.Background()); !errors.Is(err, ErrNoToken) {
		t.Errorf("Token() tras renovación inválida debe fallar con ErrNoToken")
	}
}
