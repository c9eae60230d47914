package handlers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/backsoul/agentquiz/pkg/services"
	"github.com/valyala/fasthttp"
)

// QuestionHandler maneja las peticiones HTTP para preguntas
type QuestionHandler struct {
	questionService *services.QuestionService
}

// NewQuestionHandler crea una nueva instancia del handler
func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// respondWithJSON envía una respuesta JSON
func (h *QuestionHandler) respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
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

// respondWithError envía una respuesta de error
func (h *QuestionHandler) respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	response := models.APIResponse{
		Success: false,
		Error:   message,
	}
	h.respondWithJSON(ctx, statusCode, response)
}

// respondWithSuccess envía una respuesta exitosa
func (h *QuestionHandler) respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	response := models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
	h.respondWithJSON(ctx, fasthttp.StatusOK, response)
}

// GetAllQuestions maneja GET /api/questions.
// Devuelve las preguntas en su versión pública: sin respuesta correcta
// ni explicación, eso se revela recién después de votar.
func (h *QuestionHandler) GetAllQuestions(ctx *fasthttp.RequestCtx) {
	questions := h.questionService.GetAllQuestions()

	responseData := models.QuestionResponse{
		Questions: questions,
		Count:     len(questions),
	}

	h.respondWithSuccess(ctx, responseData, "Preguntas obtenidas exitosamente")
}

// GetQuestion maneja GET /api/questions/{id}
func (h *QuestionHandler) GetQuestion(ctx *fasthttp.RequestCtx) {
	idStr := ctx.UserValue("id").(string)
	id, err := strconv.Atoi(idStr)
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusBadRequest, "ID de pregunta inválido")
		return
	}

	question, err := h.questionService.GetQuestion(id)
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("Pregunta no encontrada: %v", err))
		return
	}

	responseData := models.QuestionResponse{
		Question: question,
	}

	h.respondWithSuccess(ctx, responseData, "Pregunta obtenida exitosamente")
}

// GetQuestionMetadata maneja GET /api/questions/metadata
func (h *QuestionHandler) GetQuestionMetadata(ctx *fasthttp.RequestCtx) {
	metadata, err := h.questionService.GetQuestionMetadata()
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("Error obteniendo metadatos: %v", err))
		return
	}

	responseData := models.QuestionResponse{
		Metadata: metadata,
		Count:    h.questionService.GetQuestionCount(),
	}

	h.respondWithSuccess(ctx, responseData, "Metadatos obtenidos exitosamente")
}

// HealthCheck maneja GET /api/health
func (h *QuestionHandler) HealthCheck(ctx *fasthttp.RequestCtx) {
	err := h.questionService.HealthCheck()
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusServiceUnavailable, fmt.Sprintf("Servicio no disponible: %v", err))
		return
	}

	h.respondWithSuccess(ctx, map[string]interface{}{
		"status":    "healthy",
		"questions": h.questionService.GetQuestionCount(),
	}, "Servicio funcionando correctamente")
}
