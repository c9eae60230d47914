package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/backsoul/agentquiz/pkg/quiz"
	"github.com/backsoul/agentquiz/pkg/redis"
)

// QuestionService maneja la carga y consulta de preguntas
type QuestionService struct {
	redisClient *redis.RedisClient
	bank        *quiz.Bank
}

// NewQuestionService crea una nueva instancia del servicio
func NewQuestionService(redisClient *redis.RedisClient) *QuestionService {
	return &QuestionService{
		redisClient: redisClient,
	}
}

// LoadQuestionsFromFile carga las preguntas desde el archivo JSON, las
// valida en un banco inmutable y las espeja en Redis. Un banco mal formado
// devuelve *quiz.ConfigError: el caller debe abortar el arranque.
func (s *QuestionService) LoadQuestionsFromFile(filePath string) (*quiz.Bank, error) {
	log.Printf("📂 Cargando preguntas desde: %s", filePath)

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error leyendo archivo JSON: %v", err)
	}

	var data models.QuestionsData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("error parseando JSON de preguntas: %v", err)
	}

	bank, err := quiz.NewBank(data.Questions)
	if err != nil {
		return nil, err
	}

	s.bank = bank
	s.mirrorToRedis(data)

	log.Printf("✅ %d preguntas cargadas y validadas", bank.Len())
	return bank, nil
}

// mirrorToRedis copia las preguntas a Redis para que la API las sirva
// desde ahí. Los errores no son fatales: el banco en memoria es la fuente
// de verdad.
func (s *QuestionService) mirrorToRedis(data models.QuestionsData) {
	if s.redisClient == nil {
		return
	}

	if err := s.redisClient.ClearAllQuestions(); err != nil {
		log.Printf("⚠️ Error limpiando preguntas existentes: %v", err)
	}

	for _, question := range data.Questions {
		if err := s.redisClient.SaveQuestion(question); err != nil {
			log.Printf("❌ Error guardando pregunta %d: %v", question.ID, err)
		}
	}

	if err := s.redisClient.SaveMetadata(data.Metadata); err != nil {
		log.Printf("⚠️ Error guardando metadatos: %v", err)
	}
}

// Bank devuelve el banco de preguntas cargado
func (s *QuestionService) Bank() *quiz.Bank {
	return s.bank
}

// GetAllQuestions obtiene todas las preguntas en su versión pública
func (s *QuestionService) GetAllQuestions() []models.PublicQuestion {
	questions := s.bank.Questions()
	public := make([]models.PublicQuestion, len(questions))
	for i, q := range questions {
		public[i] = q.Public(i+1, len(questions))
	}
	return public
}

// GetQuestion obtiene la versión pública de una pregunta por ID.
// Sirve desde el espejo en Redis y cae al banco en memoria si el espejo
// no responde; el número dentro del quiz sale siempre del orden del banco.
func (s *QuestionService) GetQuestion(id int) (*models.PublicQuestion, error) {
	if s.redisClient != nil {
		if q, err := s.redisClient.GetQuestion(id); err == nil {
			if number, ok := s.position(id); ok {
				public := q.Public(number, s.bank.Len())
				return &public, nil
			}
		} else {
			log.Printf("⚠️ Espejo de Redis sin la pregunta %d, usando el banco: %v", id, err)
		}
	}

	number, ok := s.position(id)
	if !ok {
		return nil, fmt.Errorf("pregunta %d no encontrada", id)
	}

	q, _ := s.bank.ByID(id)
	public := q.Public(number, s.bank.Len())
	return &public, nil
}

// position devuelve la posición 1-based de la pregunta dentro del quiz
func (s *QuestionService) position(id int) (int, bool) {
	for i, q := range s.bank.Questions() {
		if q.ID == id {
			return i + 1, true
		}
	}
	return 0, false
}

// GetQuestionCount obtiene el número total de preguntas
func (s *QuestionService) GetQuestionCount() int {
	return s.bank.Len()
}

// GetQuestionMetadata obtiene los metadatos del quiz desde Redis
func (s *QuestionService) GetQuestionMetadata() (interface{}, error) {
	if s.redisClient == nil {
		return nil, fmt.Errorf("metadatos no disponibles sin Redis")
	}

	metadata, err := s.redisClient.GetMetadata()
	if err != nil {
		return nil, fmt.Errorf("error obteniendo metadatos: %v", err)
	}

	return metadata, nil
}

// HealthCheck verifica que el servicio esté funcionando
func (s *QuestionService) HealthCheck() error {
	if s.bank == nil || s.bank.Len() == 0 {
		return fmt.Errorf("banco de preguntas sin cargar")
	}

	if s.redisClient != nil {
		if err := s.redisClient.HealthCheck(); err != nil {
			return fmt.Errorf("error en health check de Redis: %v", err)
		}

		// El espejo debe tener las mismas preguntas que el banco
		if count, err := s.redisClient.GetQuestionCount(); err == nil && count != s.bank.Len() {
			return fmt.Errorf("espejo de preguntas desincronizado: %d en Redis, %d en el banco", count, s.bank.Len())
		}
	}

	return nil
}
