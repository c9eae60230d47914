package quiz

import (
	"errors"
	"fmt"
)

// Errores de uso de la sesión. El caller decide con errors.Is si debe
// volver a pedir la respuesta o tratar la sesión como terminada.
var (
	// ErrEmptyBank se devuelve al intentar iniciar una sesión sin preguntas
	ErrEmptyBank = errors.New("el banco de preguntas está vacío")

	// ErrOutOfRange índice elegido fuera del rango de opciones de la pregunta
	ErrOutOfRange = errors.New("índice de opción fuera de rango")

	// ErrAlreadyComplete la sesión ya respondió todas las preguntas
	ErrAlreadyComplete = errors.New("la sesión ya está completada")
)

// ConfigError indica que la definición estática de preguntas es inválida.
// Es fatal: el quiz no puede arrancar sin un banco válido.
type ConfigError struct {
	QuestionID int
	Reason     string
}

func (e *ConfigError) Error() string {
	if e.QuestionID != 0 {
		return fmt.Sprintf("configuración de preguntas inválida (pregunta %d): %s", e.QuestionID, e.Reason)
	}
	return fmt.Sprintf("configuración de preguntas inválida: %s", e.Reason)
}
