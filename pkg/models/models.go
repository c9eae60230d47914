package models

// Question estructura para representar una pregunta del quiz.
// Cada pregunta muestra un fragmento de código que el usuario debe
// clasificar eligiendo una de las opciones (Agent o Workflow).
type Question struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Code         string   `json:"code"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// CorrectLabel devuelve la etiqueta de la opción correcta
func (q Question) CorrectLabel() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return ""
	}
	return q.Choices[q.CorrectIndex]
}

// Public devuelve la versión pública de la pregunta (sin respuesta correcta
// ni explicación). number es la posición 1-based dentro del quiz.
func (q Question) Public(number, total int) PublicQuestion {
	return PublicQuestion{
		ID:      q.ID,
		Number:  number,
		Total:   total,
		Title:   q.Title,
		Code:    q.Code,
		Choices: q.Choices,
	}
}

// PublicQuestion pregunta sin la respuesta correcta ni la explicación,
// para mostrar al usuario antes de responder
type PublicQuestion struct {
	ID      int      `json:"id"`
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Title   string   `json:"title"`
	Code    string   `json:"code"`
	Choices []string `json:"choices"`
}

// QuestionsData estructura para el JSON completo
type QuestionsData struct {
	Questions []Question `json:"questions"`
	Metadata  struct {
		Total       int    `json:"totalQuestions"`
		Version     string `json:"version"`
		LastUpdated string `json:"lastUpdated"`
		Description string `json:"description"`
	} `json:"metadata"`
}

// APIResponse estructura estándar para respuestas de API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// QuestionResponse respuesta específica para preguntas
type QuestionResponse struct {
	Question  *PublicQuestion  `json:"question,omitempty"`
	Questions []PublicQuestion `json:"questions,omitempty"`
	Count     int              `json:"count,omitempty"`
	Metadata  interface{}      `json:"metadata,omitempty"`
}
