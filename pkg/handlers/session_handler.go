package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/backsoul/agentquiz/pkg/quiz"
	"github.com/backsoul/agentquiz/pkg/services"
	"github.com/valyala/fasthttp"
)

// SessionHandler maneja las peticiones HTTP para sesiones de quiz
type SessionHandler struct {
	sessionService  *services.SessionService
	questionService *services.QuestionService
	voteService     *services.VoteService
	reportService   *services.ReportService
}

// NewSessionHandler crea una nueva instancia del handler de sesiones
func NewSessionHandler(
	sessionService *services.SessionService,
	questionService *services.QuestionService,
	voteService *services.VoteService,
	reportService *services.ReportService,
) *SessionHandler {
	return &SessionHandler{
		sessionService:  sessionService,
		questionService: questionService,
		voteService:     voteService,
		reportService:   reportService,
	}
}

// CreateSession maneja POST /api/sessions
func (h *SessionHandler) CreateSession(ctx *fasthttp.RequestCtx) {
	session, err := h.sessionService.CreateSession()
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("Error creando sesión: %v", err))
		return
	}

	bank := h.questionService.Bank()
	question, _ := session.CurrentQuestion(bank)

	h.respondWithSuccess(ctx, map[string]interface{}{
		"session":  session,
		"question": question.Public(session.CurrentIndex+1, bank.Len()),
	}, "Sesión creada exitosamente")
}

// GetSession maneja GET /api/sessions/{id}
func (h *SessionHandler) GetSession(ctx *fasthttp.RequestCtx) {
	sessionID := ctx.UserValue("id").(string)

	session, err := h.sessionService.GetSession(sessionID)
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("Sesión no encontrada: %v", err))
		return
	}

	bank := h.questionService.Bank()
	h.respondWithSuccess(ctx, map[string]interface{}{
		"session":   session,
		"completed": session.IsComplete(bank),
		"score":     session.Score(bank),
	}, "Sesión obtenida exitosamente")
}

// GetCurrentQuestion maneja GET /api/sessions/{id}/question
func (h *SessionHandler) GetCurrentQuestion(ctx *fasthttp.RequestCtx) {
	sessionID := ctx.UserValue("id").(string)

	session, err := h.sessionService.GetSession(sessionID)
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("Sesión no encontrada: %v", err))
		return
	}

	bank := h.questionService.Bank()
	question, ok := session.CurrentQuestion(bank)
	if !ok {
		h.respondWithSuccess(ctx, map[string]interface{}{
			"completed": true,
		}, "La sesión ya respondió todas las preguntas")
		return
	}

	h.respondWithSuccess(ctx, map[string]interface{}{
		"question":  question.Public(session.CurrentIndex+1, bank.Len()),
		"completed": false,
	}, "Pregunta actual obtenida exitosamente")
}

// SubmitAnswer maneja POST /api/sessions/{id}/answer.
// Si la respuesta completa la sesión, dispara el registro de votos en el
// sink; un fallo del sink se loguea y no afecta la respuesta al usuario.
func (h *SessionHandler) SubmitAnswer(ctx *fasthttp.RequestCtx) {
	sessionID := ctx.UserValue("id").(string)

	var request models.AnswerRequest
	if err := json.Unmarshal(ctx.PostBody(), &request); err != nil {
		h.respondWithError(ctx, fasthttp.StatusBadRequest, "JSON inválido")
		return
	}

	session, answer, err := h.sessionService.SubmitAnswer(sessionID, request.ChosenIndex)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrOutOfRange):
			h.respondWithError(ctx, fasthttp.StatusBadRequest, "Índice de opción fuera de rango")
		case errors.Is(err, quiz.ErrAlreadyComplete):
			h.respondWithError(ctx, fasthttp.StatusConflict, "La sesión ya está completada")
		default:
			h.respondWithError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("Error registrando respuesta: %v", err))
		}
		return
	}

	bank := h.questionService.Bank()
	completed := session.IsComplete(bank)

	if completed {
		if err := h.voteService.Record(ctx, session); err != nil {
			// No fatal: el reporte sigue saliendo con datos locales
			log.Printf("⚠️ Error registrando votos en el sink: %v", err)
		}
	}

	question, _ := bank.ByID(answer.QuestionID)
	result := models.AnswerResult{
		QuestionID:   answer.QuestionID,
		ChosenLabel:  answer.ChosenLabel,
		CorrectLabel: answer.CorrectLabel,
		IsCorrect:    answer.IsCorrect,
		Explanation:  question.Explanation,
		Completed:    completed,
	}

	message := "❌ No exactamente, esto es un " + answer.CorrectLabel
	if answer.IsCorrect {
		message = "✅ ¡Correcto! Esto es un " + answer.CorrectLabel
	}

	h.respondWithSuccess(ctx, map[string]interface{}{
		"result":  result,
		"session": session,
	}, message)
}

// GetReport maneja GET /api/sessions/{id}/report
func (h *SessionHandler) GetReport(ctx *fasthttp.RequestCtx) {
	sessionID := ctx.UserValue("id").(string)

	session, err := h.sessionService.GetSession(sessionID)
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("Sesión no encontrada: %v", err))
		return
	}

	report := h.reportService.Render(ctx, session)

	h.respondWithSuccess(ctx, report, "Reporte generado exitosamente")
}

// Métodos auxiliares para respuestas HTTP
func (h *SessionHandler) respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.SetStatusCode(statusCode)

	jsonData, err := json.Marshal(response)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBodyString(`{"success": false, "error": "Error al serializar respuesta"}`)
		return
	}

	ctx.SetBody(jsonData)
}

func (h *SessionHandler) respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	response := models.APIResponse{
		Success: false,
		Error:   message,
	}
	h.respondWithJSON(ctx, statusCode, response)
}

func (h *SessionHandler) respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	response := models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
	h.respondWithJSON(ctx, fasthttp.StatusOK, response)
}
