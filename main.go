package main

import (
	"context"
	"log"
	"strings"

	"github.com/backsoul/agentquiz/pkg/config"
	"github.com/backsoul/agentquiz/pkg/handlers"
	"github.com/backsoul/agentquiz/pkg/redis"
	"github.com/backsoul/agentquiz/pkg/services"
	"github.com/backsoul/agentquiz/pkg/sheets"
	"github.com/backsoul/agentquiz/pkg/websocket"
	"github.com/valyala/fasthttp"
)

var (
	cfg             *config.Config
	redisClient     *redis.RedisClient
	sink            sheets.Sink
	questionService *services.QuestionService
	sessionService  *services.SessionService
	voteService     *services.VoteService
	reportService   *services.ReportService
	questionHandler *handlers.QuestionHandler
	sessionHandler  *handlers.SessionHandler
	statsHandler    *handlers.StatsHandler
	hub             *websocket.Hub
)

func main() {
	log.Println("🚀 Iniciando servidor ¿Agente o Workflow?")
	cfg = config.Load()

	initRedis()
	initSink()
	initServices()

	server := &fasthttp.Server{
		Handler: requestHandler,
		Name:    "AgentQuiz Server",
	}

	log.Println("🤖 Servidor ¿Agente o Workflow? iniciado")
	log.Printf("📊 API Preguntas: http://localhost:%s/api/questions", cfg.Port)
	log.Printf("🗳️  API Sesiones: http://localhost:%s/api/sessions", cfg.Port)
	log.Printf("🔧 API Health: http://localhost:%s/api/health", cfg.Port)
	log.Println("🔄 Presiona Ctrl+C para detener el servidor")

	if err := server.ListenAndServe(":" + cfg.Port); err != nil {
		log.Fatalf("Error al iniciar el servidor: %v", err)
	}
}

func initRedis() {
	log.Printf("🔌 Conectando a Redis en %s...", cfg.Redis.Addr)
	redisClient = redis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
}

// initSink construye el cliente de la hoja de cálculo. Sin configuración
// el servidor arranca igual en modo local: los votos solo se cuentan en
// Redis y el reporte usa el conteo local.
func initSink() {
	if !cfg.SinkEnabled() {
		log.Println("📴 Hoja de cálculo sin configurar, votos en modo local")
		return
	}

	credsJSON, creds, err := config.LoadSinkCredentials(cfg.Sheet.CredentialsFile)
	if err != nil {
		log.Fatalf("❌ Credenciales del sink inválidas: %v", err)
	}

	sheetSink, err := sheets.NewSheetsSink(context.Background(), credsJSON, cfg.Sheet.SpreadsheetID, cfg.Sheet.SheetName)
	if err != nil {
		log.Fatalf("❌ Error creando cliente de Sheets: %v", err)
	}

	sink = sheetSink
	log.Printf("📊 Sink conectado a la hoja %s (cuenta %s)", cfg.Sheet.SpreadsheetID, creds.ClientEmail)
}

func initServices() {
	log.Println("⚙️  Inicializando servicios...")
	questionService = services.NewQuestionService(redisClient)

	// El quiz no puede arrancar con preguntas mal formadas
	bank, err := questionService.LoadQuestionsFromFile(cfg.QuestionsFile)
	if err != nil {
		log.Fatalf("❌ Error cargando preguntas: %v", err)
	}

	hub = websocket.NewHub()
	go hub.Run()

	sessionService = services.NewSessionService(redisClient, bank)
	voteService = services.NewVoteService(sink, redisClient, hub, bank)
	reportService = services.NewReportService(sink, redisClient, bank)

	questionHandler = handlers.NewQuestionHandler(questionService)
	sessionHandler = handlers.NewSessionHandler(sessionService, questionService, voteService, reportService)
	statsHandler = handlers.NewStatsHandler(voteService, sessionService, hub)
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	method := string(ctx.Method())

	log.Printf("📡 %s %s", method, path)

	ctx.Response.Header.Set("Server", "AgentQuiz-FastHTTP/1.0")
	ctx.Response.Header.Set("Cache-Control", "no-cache")

	// Headers CORS para desarrollo
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	ctx.Response.Header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if method == "OPTIONS" {
		ctx.SetStatusCode(fasthttp.StatusOK)
		return
	}

	switch {
	// API Routes - Health
	case path == "/api/health":
		questionHandler.HealthCheck(ctx)

	// API Routes - Questions
	case path == "/api/questions" && method == "GET":
		questionHandler.GetAllQuestions(ctx)
	case path == "/api/questions/metadata" && method == "GET":
		questionHandler.GetQuestionMetadata(ctx)

	// API Routes - Sessions
	case path == "/api/sessions" && method == "POST":
		sessionHandler.CreateSession(ctx)

	// API Routes - Stats
	case path == "/api/stats" && method == "GET":
		statsHandler.GetStats(ctx)

	// WebSocket Route
	case path == "/ws":
		statsHandler.HandleWebSocket(ctx)

	// API Routes - Individual Questions and Sessions (with parameters)
	case strings.HasPrefix(path, "/api/questions/") && method == "GET":
		// Manejar /api/questions/{id}
		parts := strings.Split(path, "/")
		if len(parts) == 4 && parts[1] == "api" && parts[2] == "questions" {
			ctx.SetUserValue("id", parts[3])
			questionHandler.GetQuestion(ctx)
		} else {
			serve404(ctx)
		}
	case strings.HasPrefix(path, "/api/sessions/") && method == "GET":
		handleSessionGetRoutes(ctx, path)
	case strings.HasPrefix(path, "/api/sessions/") && method == "POST":
		handleSessionPostRoutes(ctx, path)

	default:
		serve404(ctx)
	}
}

func serve404(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusNotFound)
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"success": false, "error": "Ruta no encontrada"}`)
}

func handleSessionGetRoutes(ctx *fasthttp.RequestCtx, path string) {
	parts := strings.Split(path, "/")

	// /api/sessions/{id}/question
	if len(parts) == 5 && parts[1] == "api" && parts[2] == "sessions" && parts[4] == "question" {
		ctx.SetUserValue("id", parts[3])
		sessionHandler.GetCurrentQuestion(ctx)
		return
	}

	// /api/sessions/{id}/report
	if len(parts) == 5 && parts[1] == "api" && parts[2] == "sessions" && parts[4] == "report" {
		ctx.SetUserValue("id", parts[3])
		sessionHandler.GetReport(ctx)
		return
	}

	// /api/sessions/{id}
	if len(parts) == 4 && parts[1] == "api" && parts[2] == "sessions" {
		ctx.SetUserValue("id", parts[3])
		sessionHandler.GetSession(ctx)
		return
	}

	serve404(ctx)
}

func handleSessionPostRoutes(ctx *fasthttp.RequestCtx, path string) {
	parts := strings.Split(path, "/")

	// /api/sessions/{id}/answer
	if len(parts) == 5 && parts[1] == "api" && parts[2] == "sessions" && parts[4] == "answer" {
		ctx.SetUserValue("id", parts[3])
		sessionHandler.SubmitAnswer(ctx)
		return
	}

	serve404(ctx)
}
