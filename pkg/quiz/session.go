package quiz

import (
	"time"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/google/uuid"
)

// Session representa el paso de un usuario por el quiz. Avanza de forma
// estrictamente lineal: una respuesta por pregunta, sin volver atrás.
// La sesión está completa cuando CurrentIndex == largo del banco.
type Session struct {
	ID           string          `json:"id"`
	CurrentIndex int             `json:"currentIndex"`
	Answers      []models.Answer `json:"answers"`
	StartedAt    time.Time       `json:"startedAt"`
	LastActivity time.Time       `json:"lastActivity"`
}

// StartSession inicia una nueva sesión contra el banco dado.
// Devuelve ErrEmptyBank si el banco no tiene preguntas.
func StartSession(bank *Bank) (*Session, error) {
	if bank.Len() == 0 {
		return nil, ErrEmptyBank
	}

	now := time.Now()
	return &Session{
		ID:           uuid.New().String(),
		CurrentIndex: 0,
		Answers:      []models.Answer{},
		StartedAt:    now,
		LastActivity: now,
	}, nil
}

// IsComplete indica si la sesión ya respondió todas las preguntas
func (s *Session) IsComplete(bank *Bank) bool {
	return s.CurrentIndex == bank.Len()
}

// CurrentQuestion devuelve la pregunta que el usuario tiene en pantalla.
// ok es false cuando la sesión ya está completa.
func (s *Session) CurrentQuestion(bank *Bank) (models.Question, bool) {
	return bank.At(s.CurrentIndex)
}

// SubmitAnswer registra la respuesta a la pregunta actual y avanza el
// índice en uno. Devuelve ErrAlreadyComplete si la sesión terminó y
// ErrOutOfRange si el índice elegido no corresponde a ninguna opción.
// En ambos casos de error la sesión queda exactamente igual.
func (s *Session) SubmitAnswer(bank *Bank, chosenIndex int) (models.Answer, error) {
	if s.IsComplete(bank) {
		return models.Answer{}, ErrAlreadyComplete
	}

	question, _ := bank.At(s.CurrentIndex)
	if chosenIndex < 0 || chosenIndex >= len(question.Choices) {
		return models.Answer{}, ErrOutOfRange
	}

	answer := models.Answer{
		QuestionID:     question.ID,
		QuestionNumber: s.CurrentIndex + 1,
		ChosenIndex:    chosenIndex,
		ChosenLabel:    question.Choices[chosenIndex],
		CorrectLabel:   question.CorrectLabel(),
		IsCorrect:      chosenIndex == question.CorrectIndex,
		AnsweredAt:     time.Now(),
	}

	s.Answers = append(s.Answers, answer)
	s.CurrentIndex++
	s.LastActivity = answer.AnsweredAt

	return answer, nil
}

// Score cuenta las respuestas correctas emparejando cada respuesta con su
// pregunta por id. Con la sesión a medias devuelve el puntaje parcial,
// nunca un error.
func (s *Session) Score(bank *Bank) int {
	score := 0
	for _, a := range s.Answers {
		q, ok := bank.ByID(a.QuestionID)
		if !ok {
			continue
		}
		if a.ChosenIndex == q.CorrectIndex {
			score++
		}
	}
	return score
}
