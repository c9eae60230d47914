package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config variables de entorno del servicio
type Config struct {
	Port          string
	QuestionsFile string

	Redis RedisConfig
	Sheet SheetConfig
}

// RedisConfig configuración de Redis
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SheetConfig configuración del sink (hoja de cálculo).
// Si SpreadsheetID o CredentialsFile están vacíos, el servicio arranca en
// modo local: los votos solo se cuentan en Redis.
type SheetConfig struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
}

// SinkCredentials credenciales de la cuenta de servicio, con los campos
// enumerados explícitamente y validados al arrancar. Nunca se leen del
// ambiente dentro de la lógica del quiz.
type SinkCredentials struct {
	Type         string `json:"type" validate:"required,eq=service_account"`
	ProjectID    string `json:"project_id" validate:"required"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key" validate:"required"`
	ClientEmail  string `json:"client_email" validate:"required,email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`
}

// Load carga la configuración desde el ambiente (y .env si existe)
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		QuestionsFile: getEnvOrDefault("QUESTIONS_FILE", "questions.json"),
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		Sheet: SheetConfig{
			SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
			SheetName:       getEnvOrDefault("SHEET_NAME", "votes"),
			CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		},
	}
}

// SinkEnabled indica si hay configuración suficiente para el sink
func (c *Config) SinkEnabled() bool {
	return c.Sheet.SpreadsheetID != "" && c.Sheet.CredentialsFile != ""
}

// LoadSinkCredentials lee y valida el archivo JSON de la cuenta de servicio.
// Devuelve el JSON crudo (para el cliente de Sheets) y la estructura parseada.
func LoadSinkCredentials(path string) ([]byte, *SinkCredentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error leyendo credenciales: %w", err)
	}

	var creds SinkCredentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, nil, fmt.Errorf("error parseando credenciales: %w", err)
	}

	if err := validator.New().Struct(&creds); err != nil {
		return nil, nil, fmt.Errorf("credenciales de cuenta de servicio inválidas: %w", err)
	}

	return raw, &creds, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
