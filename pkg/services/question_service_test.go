package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backsoul/agentquiz/pkg/quiz"
	"github.com/backsoul/agentquiz/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func escribirPreguntas(t *testing.T, contenido string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(contenido), 0o600))
	return path
}

func TestLoadQuestionsFromFile(t *testing.T) {
	path := escribirPreguntas(t, `{
		"questions": [
			{"id": 1, "title": "Routing", "code": "def handle_request(x): ...",
			 "choices": ["Agent", "Workflow"], "correctIndex": 1,
			 "explanation": "Ruteo predefinido."},
			{"id": 2, "title": "Research Agent", "code": "def research(q): ...",
			 "choices": ["Agent", "Workflow"], "correctIndex": 0,
			 "explanation": "El LLM decide el siguiente paso."}
		],
		"metadata": {"totalQuestions": 2, "version": "1.0.0"}
	}`)

	questionService := services.NewQuestionService(nil)
	bank, err := questionService.LoadQuestionsFromFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, bank.Len())

	public := questionService.GetAllQuestions()
	require.Len(t, public, 2)
	assert.Equal(t, "Routing", public[0].Title)
	assert.Equal(t, 1, public[0].Number)
	assert.Equal(t, 2, public[0].Total)

	q, err := questionService.GetQuestion(2)
	require.NoError(t, err)
	assert.Equal(t, "Research Agent", q.Title)
	assert.Equal(t, 2, q.Number)

	_, err = questionService.GetQuestion(99)
	require.Error(t, err)

	require.NoError(t, questionService.HealthCheck())
}

func TestGetQuestionSinEspejoUsaElBanco(t *testing.T) {
	path := escribirPreguntas(t, `{
		"questions": [
			{"id": 10, "title": "Routing", "code": "...",
			 "choices": ["Agent", "Workflow"], "correctIndex": 1,
			 "explanation": "Ruteo predefinido."},
			{"id": 20, "title": "Research Agent", "code": "...",
			 "choices": ["Agent", "Workflow"], "correctIndex": 0,
			 "explanation": "El LLM decide el siguiente paso."}
		],
		"metadata": {"totalQuestions": 2}
	}`)

	// Sin cliente de Redis el espejo no existe: la pregunta sale del banco
	// con su posición dentro del quiz intacta
	questionService := services.NewQuestionService(nil)
	_, err := questionService.LoadQuestionsFromFile(path)
	require.NoError(t, err)

	q, err := questionService.GetQuestion(20)
	require.NoError(t, err)
	assert.Equal(t, "Research Agent", q.Title)
	assert.Equal(t, 2, q.Number)
	assert.Equal(t, 2, q.Total)

	_, err = questionService.GetQuestion(30)
	require.Error(t, err)

	// El health check no exige espejo cuando no hay Redis
	require.NoError(t, questionService.HealthCheck())
}

func TestLoadQuestionsFromFileMalFormado(t *testing.T) {
	// correctIndex 5 con solo 3 opciones: ConfigError, el arranque aborta
	path := escribirPreguntas(t, `{
		"questions": [
			{"id": 1, "title": "Routing", "code": "...",
			 "choices": ["Agent", "Workflow", "Ninguno"], "correctIndex": 5,
			 "explanation": "x"}
		],
		"metadata": {"totalQuestions": 1}
	}`)

	questionService := services.NewQuestionService(nil)
	_, err := questionService.LoadQuestionsFromFile(path)
	require.Error(t, err)

	var cfgErr *quiz.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadQuestionsFromFileInexistente(t *testing.T) {
	questionService := services.NewQuestionService(nil)
	_, err := questionService.LoadQuestionsFromFile("/no/existe.json")
	require.Error(t, err)
}
