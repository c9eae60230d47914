package handlers

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/backsoul/agentquiz/pkg/services"
	websocketHub "github.com/backsoul/agentquiz/pkg/websocket"
	"github.com/fasthttp/websocket"
	"github.com/valyala/fasthttp"
)

// StatsHandler expone el tally en vivo de votos: por HTTP para el reporte
// y por WebSocket para actualizar a los clientes conectados
type StatsHandler struct {
	voteService    *services.VoteService
	sessionService *services.SessionService
	hub            *websocketHub.Hub
}

func NewStatsHandler(voteService *services.VoteService, sessionService *services.SessionService, hub *websocketHub.Hub) *StatsHandler {
	return &StatsHandler{
		voteService:    voteService,
		sessionService: sessionService,
		hub:            hub,
	}
}

var upgrader = websocket.FastHTTPUpgrader{
	CheckOrigin: func(ctx *fasthttp.RequestCtx) bool {
		return true // Permitir conexiones desde cualquier origen en desarrollo
	},
}

// GetStats maneja GET /api/stats
func (h *StatsHandler) GetStats(ctx *fasthttp.RequestCtx) {
	tally, err := h.voteService.LocalTally()
	if err != nil {
		h.respondWithError(ctx, fasthttp.StatusInternalServerError, fmt.Sprintf("Error obteniendo estadísticas: %v", err))
		return
	}

	activeSessions, err := h.sessionService.GetActiveSessionCount()
	if err != nil {
		log.Printf("⚠️ Error contando sesiones activas: %v", err)
		activeSessions = 0
	}

	h.respondWithSuccess(ctx, map[string]interface{}{
		"tally":          tally,
		"activeSessions": activeSessions,
	}, "Estadísticas obtenidas exitosamente")
}

// HandleWebSocket maneja las conexiones WebSocket. Al conectarse el
// cliente recibe el tally actual; después el hub le empuja cada
// actualización.
func (h *StatsHandler) HandleWebSocket(ctx *fasthttp.RequestCtx) {
	err := upgrader.Upgrade(ctx, func(ws *websocket.Conn) {
		defer ws.Close()

		h.hub.Register(ws)
		defer h.hub.Unregister(ws)

		tally, err := h.voteService.LocalTally()
		if err == nil {
			message := websocketHub.Message{
				Type: "tally",
				Data: tally,
			}
			data, _ := json.Marshal(message)
			ws.WriteMessage(websocket.TextMessage, data)
		}

		// Escuchar mensajes del cliente
		for {
			_, _, err := ws.ReadMessage()
			if err != nil {
				log.Printf("Error leyendo mensaje WebSocket: %v", err)
				break
			}
		}
	})

	if err != nil {
		log.Printf("Error upgrading to WebSocket: %v", err)
		ctx.Error("Error upgrading to WebSocket", fasthttp.StatusInternalServerError)
	}
}

func (h *StatsHandler) respondWithJSON(ctx *fasthttp.RequestCtx, statusCode int, response interface{}) {
	ctx.SetStatusCode(statusCode)
	ctx.SetContentType("application/json")
	json.NewEncoder(ctx).Encode(response)
}

func (h *StatsHandler) respondWithError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	response := models.APIResponse{
		Success: false,
		Error:   message,
	}
	h.respondWithJSON(ctx, statusCode, response)
}

func (h *StatsHandler) respondWithSuccess(ctx *fasthttp.RequestCtx, data interface{}, message string) {
	response := models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
	h.respondWithJSON(ctx, fasthttp.StatusOK, response)
}
