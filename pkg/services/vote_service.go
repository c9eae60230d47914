package services

import (
	"context"
	"fmt"
	"log"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/backsoul/agentquiz/pkg/quiz"
	"github.com/backsoul/agentquiz/pkg/redis"
	"github.com/backsoul/agentquiz/pkg/sheets"
	"github.com/backsoul/agentquiz/pkg/websocket"
)

// VoteService registra los votos de una sesión completada en la hoja de
// cálculo y mantiene el conteo local que alimenta el tally en vivo.
type VoteService struct {
	sink        sheets.Sink
	redisClient *redis.RedisClient
	hub         *websocket.Hub
	bank        *quiz.Bank
}

// NewVoteService crea una nueva instancia del servicio de votos.
// sink puede ser nil (modo local): los votos solo se cuentan en Redis.
func NewVoteService(sink sheets.Sink, redisClient *redis.RedisClient, hub *websocket.Hub, bank *quiz.Bank) *VoteService {
	return &VoteService{
		sink:        sink,
		redisClient: redisClient,
		hub:         hub,
		bank:        bank,
	}
}

// Record registra los votos de una sesión completada: una fila por
// respuesta, agregadas en una sola llamada al sink. A lo sumo un intento
// por sesión, sin reintentos. Un error del sink se devuelve como
// *sheets.SinkError y el caller debe tratarlo como no fatal: el conteo
// local ya quedó actualizado y el reporte se renderiza igual.
func (s *VoteService) Record(ctx context.Context, session *quiz.Session) error {
	if !session.IsComplete(s.bank) {
		return fmt.Errorf("la sesión %s no está completada", session.ID)
	}

	// El conteo local va primero: sobrevive aunque la hoja falle
	s.countLocally(session)
	s.broadcastTally()

	if s.sink == nil {
		log.Printf("📴 Sink deshabilitado, votos de la sesión %s solo en conteo local", session.ID)
		return nil
	}

	rows := buildVoteRows(session)
	if err := s.sink.AppendRows(ctx, rows); err != nil {
		return err
	}

	log.Printf("📊 %d votos de la sesión %s registrados en la hoja", len(rows), session.ID)
	return nil
}

// LocalTally devuelve el conteo local de votos por pregunta
func (s *VoteService) LocalTally() (models.AggregateStats, error) {
	return localAggregate(s.redisClient, s.bank)
}

func (s *VoteService) countLocally(session *quiz.Session) {
	if s.redisClient == nil {
		return
	}

	for _, answer := range session.Answers {
		if err := s.redisClient.IncrementVote(answer.QuestionID, answer.ChosenLabel); err != nil {
			log.Printf("⚠️ Error contando voto de la pregunta %d: %v", answer.QuestionID, err)
		}
	}
}

func (s *VoteService) broadcastTally() {
	if s.hub == nil {
		return
	}

	tally, err := s.LocalTally()
	if err != nil {
		log.Printf("⚠️ Error armando tally para broadcast: %v", err)
		return
	}

	s.hub.BroadcastMessage("tally", tally)
}

// buildVoteRows arma las filas de la hoja en el orden de columnas que
// espera el dashboard: Session ID | Question Number | User Vote |
// Correct Answer | Timestamp
func buildVoteRows(session *quiz.Session) [][]interface{} {
	rows := make([][]interface{}, 0, len(session.Answers))
	for _, answer := range session.Answers {
		row := models.VoteRow{
			SessionID:      session.ID,
			QuestionNumber: answer.QuestionNumber,
			UserVote:       answer.ChosenLabel,
			CorrectAnswer:  answer.CorrectLabel,
			Timestamp:      answer.AnsweredAt,
		}
		rows = append(rows, row.Fields())
	}
	return rows
}
