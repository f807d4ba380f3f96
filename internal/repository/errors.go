package repository

import "errors"

var (
	// ErrHoldingNotFound indica que la tenencia no existe o pertenece a otro usuario
	ErrHoldingNotFound = errors.New("tenencia no encontrada")
	// ErrUserNotFound indica que el usuario no existe
	ErrUserNotFound = errors.New("usuario no encontrado")
)
