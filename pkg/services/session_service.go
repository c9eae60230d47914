package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/backsoul/agentquiz/pkg/quiz"
	"github.com/backsoul/agentquiz/pkg/redis"
)

// sessionTTL las sesiones abandonadas expiran solas en Redis
const sessionTTL = 24 * time.Hour

// SessionService maneja las sesiones de los participantes. El estado vive
// en Redis; la lógica de transición vive en el núcleo quiz.Session.
type SessionService struct {
	redisClient *redis.RedisClient
	bank        *quiz.Bank
}

// NewSessionService crea una nueva instancia del servicio de sesiones
func NewSessionService(redisClient *redis.RedisClient, bank *quiz.Bank) *SessionService {
	return &SessionService{
		redisClient: redisClient,
		bank:        bank,
	}
}

// CreateSession crea una nueva sesión de quiz
func (s *SessionService) CreateSession() (*quiz.Session, error) {
	session, err := quiz.StartSession(s.bank)
	if err != nil {
		return nil, err
	}

	if err := s.saveSession(session); err != nil {
		return nil, fmt.Errorf("error guardando sesión: %v", err)
	}

	if err := s.redisClient.AddToSet("quiz:active_sessions", session.ID); err != nil {
		log.Printf("⚠️ Error agregando a sesiones activas: %v", err)
	}

	log.Printf("✅ Nueva sesión creada (ID: %s)", session.ID)
	return session, nil
}

// GetSession obtiene una sesión por ID
func (s *SessionService) GetSession(sessionID string) (*quiz.Session, error) {
	sessionJSON, err := s.redisClient.Get(fmt.Sprintf("quiz:session:%s", sessionID))
	if err != nil {
		return nil, fmt.Errorf("sesión no encontrada: %v", err)
	}

	var session quiz.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("error parseando sesión: %v", err)
	}

	return &session, nil
}

// SubmitAnswer registra la respuesta a la pregunta actual de la sesión.
// Los errores de uso (ErrOutOfRange, ErrAlreadyComplete) se devuelven tal
// cual y no modifican nada: el caller los distingue con errors.Is.
func (s *SessionService) SubmitAnswer(sessionID string, chosenIndex int) (*quiz.Session, models.Answer, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, models.Answer{}, err
	}

	answer, err := session.SubmitAnswer(s.bank, chosenIndex)
	if err != nil {
		return nil, models.Answer{}, err
	}

	if err := s.saveSession(session); err != nil {
		return nil, models.Answer{}, fmt.Errorf("error guardando sesión: %v", err)
	}

	if session.IsComplete(s.bank) {
		if err := s.redisClient.RemoveFromSet("quiz:active_sessions", session.ID); err != nil {
			log.Printf("⚠️ Error removiendo de sesiones activas: %v", err)
		}
	}

	return session, answer, nil
}

// GetActiveSessionCount obtiene la cantidad de sesiones activas
func (s *SessionService) GetActiveSessionCount() (int, error) {
	members, err := s.redisClient.GetSetMembers("quiz:active_sessions")
	if err != nil {
		return 0, fmt.Errorf("error obteniendo sesiones activas: %v", err)
	}

	// Las sesiones expiran por TTL pero el set las retiene; filtrar las muertas
	active := 0
	for _, sessionID := range members {
		if _, err := s.GetSession(sessionID); err != nil {
			s.redisClient.RemoveFromSet("quiz:active_sessions", sessionID)
			continue
		}
		active++
	}

	return active, nil
}

func (s *SessionService) saveSession(session *quiz.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error serializando sesión: %v", err)
	}

	key := fmt.Sprintf("quiz:session:%s", session.ID)
	return s.redisClient.Set(key, string(sessionJSON), sessionTTL)
}
