package models

import "time"

// Answer respuesta dada por el usuario a una pregunta del quiz
type Answer struct {
	QuestionID     int       `json:"questionId"`
	QuestionNumber int       `json:"questionNumber"`
	ChosenIndex    int       `json:"chosenIndex"`
	ChosenLabel    string    `json:"chosenLabel"`
	CorrectLabel   string    `json:"correctLabel"`
	IsCorrect      bool      `json:"isCorrect"`
	AnsweredAt     time.Time `json:"answeredAt"`
}

// AnswerRequest request para enviar una respuesta
type AnswerRequest struct {
	ChosenIndex int `json:"chosenIndex"`
}

// AnswerResult resultado de una respuesta individual, incluye la
// explicación que se muestra al usuario después de votar
type AnswerResult struct {
	QuestionID   int    `json:"questionId"`
	ChosenLabel  string `json:"chosenLabel"`
	CorrectLabel string `json:"correctLabel"`
	IsCorrect    bool   `json:"isCorrect"`
	Explanation  string `json:"explanation"`
	Completed    bool   `json:"completed"`
}
