package quiz

import (
	"github.com/backsoul/agentquiz/pkg/models"
)

// Bank banco de preguntas inmutable. Se construye una sola vez al arrancar
// el proceso y se pasa explícitamente a las sesiones: no hay estado global.
type Bank struct {
	questions []models.Question
	byID      map[int]models.Question
}

// NewBank valida la lista de preguntas y construye el banco.
// Devuelve *ConfigError si la definición está mal formada: ids duplicados,
// menos de dos opciones, índice correcto fuera de rango o prompt vacío.
func NewBank(questions []models.Question) (*Bank, error) {
	byID := make(map[int]models.Question, len(questions))

	for _, q := range questions {
		if q.Title == "" {
			return nil, &ConfigError{QuestionID: q.ID, Reason: "el título está vacío"}
		}
		if len(q.Choices) < 2 {
			return nil, &ConfigError{QuestionID: q.ID, Reason: "se requieren al menos 2 opciones"}
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
			return nil, &ConfigError{QuestionID: q.ID, Reason: "correctIndex fuera del rango de opciones"}
		}
		if _, dup := byID[q.ID]; dup {
			return nil, &ConfigError{QuestionID: q.ID, Reason: "id de pregunta duplicado"}
		}
		byID[q.ID] = q
	}

	// Copia defensiva: el slice del caller no puede mutar el banco
	qs := make([]models.Question, len(questions))
	copy(qs, questions)

	return &Bank{questions: qs, byID: byID}, nil
}

// Len devuelve la cantidad de preguntas del banco
func (b *Bank) Len() int {
	return len(b.questions)
}

// At devuelve la pregunta en la posición pos (0-based)
func (b *Bank) At(pos int) (models.Question, bool) {
	if pos < 0 || pos >= len(b.questions) {
		return models.Question{}, false
	}
	return b.questions[pos], true
}

// ByID devuelve la pregunta con el id dado
func (b *Bank) ByID(id int) (models.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Questions devuelve una copia de todas las preguntas en orden
func (b *Bank) Questions() []models.Question {
	qs := make([]models.Question, len(b.questions))
	copy(qs, b.questions)
	return qs
}
