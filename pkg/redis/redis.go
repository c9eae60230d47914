package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/redis/go-redis/v9"
)

// RedisClient estructura para manejar conexiones con Redis
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient crea una nueva instancia del cliente Redis
func NewRedisClient(addr, password string, db int) *RedisClient {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	// Verificar conexión
	_, err := rdb.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("❌ Error conectando a Redis: %v", err)
	}

	log.Println("✅ Conexión exitosa a Redis")

	return &RedisClient{
		client: rdb,
		ctx:    ctx,
	}
}

// ---- Preguntas ----

// SaveQuestion guarda una pregunta individual en Redis
func (r *RedisClient) SaveQuestion(question models.Question) error {
	questionJSON, err := json.Marshal(question)
	if err != nil {
		return fmt.Errorf("error serializando pregunta: %v", err)
	}

	key := fmt.Sprintf("quiz:question:%d", question.ID)
	if err := r.client.Set(r.ctx, key, questionJSON, 0).Err(); err != nil {
		return err
	}

	return r.client.SAdd(r.ctx, "quiz:question_ids", question.ID).Err()
}

// GetQuestion obtiene una pregunta específica por ID
func (r *RedisClient) GetQuestion(id int) (*models.Question, error) {
	key := fmt.Sprintf("quiz:question:%d", id)

	questionJSON, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("pregunta %d no encontrada", id)
		}
		return nil, fmt.Errorf("error obteniendo pregunta: %v", err)
	}

	var question models.Question
	if err := json.Unmarshal([]byte(questionJSON), &question); err != nil {
		return nil, fmt.Errorf("error parseando pregunta: %v", err)
	}

	return &question, nil
}

// GetQuestionCount obtiene el número total de preguntas en Redis
func (r *RedisClient) GetQuestionCount() (int, error) {
	count, err := r.client.SCard(r.ctx, "quiz:question_ids").Result()
	if err != nil {
		return 0, fmt.Errorf("error obteniendo conteo de preguntas: %v", err)
	}
	return int(count), nil
}

// ClearAllQuestions elimina todas las preguntas de Redis
func (r *RedisClient) ClearAllQuestions() error {
	questionIDs, err := r.client.SMembers(r.ctx, "quiz:question_ids").Result()
	if err == nil {
		for _, idStr := range questionIDs {
			key := fmt.Sprintf("quiz:question:%s", idStr)
			r.client.Del(r.ctx, key)
		}
	}

	return r.client.Del(r.ctx, "quiz:question_ids").Err()
}

// SaveMetadata guarda los metadatos del quiz
func (r *RedisClient) SaveMetadata(metadata interface{}) error {
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("error serializando metadatos: %v", err)
	}
	return r.client.Set(r.ctx, "quiz:metadata", metadataJSON, 0).Err()
}

// GetMetadata obtiene los metadatos del quiz
func (r *RedisClient) GetMetadata() (map[string]interface{}, error) {
	metadataJSON, err := r.client.Get(r.ctx, "quiz:metadata").Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("metadatos no encontrados")
		}
		return nil, fmt.Errorf("error obteniendo metadatos: %v", err)
	}

	var metadata map[string]interface{}
	if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
		return nil, fmt.Errorf("error parseando metadatos: %v", err)
	}

	return metadata, nil
}

// ---- Conteo de votos ----

// IncrementVote incrementa el conteo local de votos de una pregunta.
// El conteo alimenta el tally en vivo y el reporte degradado cuando la
// hoja de cálculo no responde.
func (r *RedisClient) IncrementVote(questionID int, label string) error {
	key := fmt.Sprintf("quiz:votes:q:%d", questionID)
	return r.client.HIncrBy(r.ctx, key, label, 1).Err()
}

// GetVotes obtiene el conteo de votos por opción para una pregunta
func (r *RedisClient) GetVotes(questionID int) (map[string]int, error) {
	key := fmt.Sprintf("quiz:votes:q:%d", questionID)

	raw, err := r.client.HGetAll(r.ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("error obteniendo votos de la pregunta %d: %v", questionID, err)
	}

	votes := make(map[string]int, len(raw))
	for label, countStr := range raw {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			continue
		}
		votes[label] = count
	}

	return votes, nil
}

// ---- Operaciones genéricas (sesiones) ----

// Get obtiene el valor de una clave
func (r *RedisClient) Get(key string) (string, error) {
	return r.client.Get(r.ctx, key).Result()
}

// Set guarda un valor con TTL opcional (0 = sin expiración)
func (r *RedisClient) Set(key, value string, ttl time.Duration) error {
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// AddToSet agrega un miembro a un set
func (r *RedisClient) AddToSet(key, member string) error {
	return r.client.SAdd(r.ctx, key, member).Err()
}

// RemoveFromSet elimina un miembro de un set
func (r *RedisClient) RemoveFromSet(key, member string) error {
	return r.client.SRem(r.ctx, key, member).Err()
}

// GetSetMembers obtiene todos los miembros de un set
func (r *RedisClient) GetSetMembers(key string) ([]string, error) {
	return r.client.SMembers(r.ctx, key).Result()
}

// Close cierra la conexión con Redis
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// HealthCheck verifica que Redis esté funcionando
func (r *RedisClient) HealthCheck() error {
	_, err := r.client.Ping(r.ctx).Result()
	if err != nil {
		return fmt.Errorf("redis health check falló: %v", err)
	}
	return nil
}
