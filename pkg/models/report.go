package models

import "time"

// VoteRow fila que se agrega a la hoja de cálculo por cada voto.
// El orden de las columnas es el que espera el dashboard:
// Session ID | Question Number | User Vote | Correct Answer | Timestamp
type VoteRow struct {
	SessionID      string
	QuestionNumber int
	UserVote       string
	CorrectAnswer  string
	Timestamp      time.Time
}

// Fields devuelve la fila en el orden de columnas de la hoja
func (v VoteRow) Fields() []interface{} {
	return []interface{}{
		v.SessionID,
		v.QuestionNumber,
		v.UserVote,
		v.CorrectAnswer,
		v.Timestamp.UTC().Format(time.RFC3339),
	}
}

// Report resumen final de una sesión completada
type Report struct {
	SessionID string         `json:"sessionId"`
	Score     int            `json:"score"`
	Total     int            `json:"total"`
	Percent   float64        `json:"percent"`
	Verdict   string         `json:"verdict"`
	Items     []ReportItem   `json:"items"`
	Aggregate AggregateStats `json:"aggregate"`
}

// ReportItem detalle por pregunta del reporte final
type ReportItem struct {
	QuestionID   int    `json:"questionId"`
	Number       int    `json:"number"`
	Title        string `json:"title"`
	ChosenLabel  string `json:"chosenLabel"`
	CorrectLabel string `json:"correctLabel"`
	IsCorrect    bool   `json:"isCorrect"`
	Explanation  string `json:"explanation"`
}

// AggregateStats estadísticas agregadas de todos los participantes.
// Si el sink no está disponible, Available queda en false y el resto
// de los campos vacíos: el reporte local sigue funcionando igual.
type AggregateStats struct {
	Available   bool               `json:"available"`
	Source      string             `json:"source,omitempty"` // "sheet" o "redis"
	TotalVotes  int                `json:"totalVotes,omitempty"`
	Votes       map[string]int     `json:"votes,omitempty"`
	Percent     map[string]float64 `json:"percent,omitempty"`
	PerQuestion []QuestionTally    `json:"perQuestion,omitempty"`
}

// QuestionTally conteo de votos para una pregunta
type QuestionTally struct {
	QuestionID int                `json:"questionId"`
	Title      string             `json:"title"`
	Total      int                `json:"total"`
	Votes      map[string]int     `json:"votes"`
	Percent    map[string]float64 `json:"percent"`
}
