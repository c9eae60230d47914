package quiz_test

import (
	"testing"

	"github.com/backsoul/agentquiz/pkg/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartSessionBancoVacio(t *testing.T) {
	bank, err := quiz.NewBank(nil)
	require.NoError(t, err)

	_, err = quiz.StartSession(bank)
	require.ErrorIs(t, err, quiz.ErrEmptyBank)
}

func TestSubmitAnswerAvanzaDeAUno(t *testing.T) {
	bank, err := quiz.NewBank(validQuestions())
	require.NoError(t, err)

	session, err := quiz.StartSession(bank)
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)
	require.Equal(t, 0, session.CurrentIndex)
	require.Empty(t, session.Answers)
	assert.False(t, session.IsComplete(bank))

	answer, err := session.SubmitAnswer(bank, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, session.CurrentIndex)
	assert.Len(t, session.Answers, 1)
	assert.Equal(t, 1, answer.QuestionID)
	assert.Equal(t, 1, answer.QuestionNumber)
	assert.Equal(t, "Workflow", answer.ChosenLabel)
	assert.True(t, answer.IsCorrect)
}

// Escenario del contrato: banco de 2 preguntas con índices correctos [1, 0],
// la sesión responde [1, 1] -> puntaje 1 y sesión completa.
func TestScoreEscenarioDosPreguntas(t *testing.T) {
	bank, err := quiz.NewBank(validQuestions())
	require.NoError(t, err)

	session, err := quiz.StartSession(bank)
	require.NoError(t, err)

	_, err = session.SubmitAnswer(bank, 1)
	require.NoError(t, err)
	_, err = session.SubmitAnswer(bank, 1)
	require.NoError(t, err)

	assert.True(t, session.IsComplete(bank))
	assert.Equal(t, 1, session.Score(bank))
}

func TestScoreParcialNuncaExcedeLimites(t *testing.T) {
	bank, err := quiz.NewBank(validQuestions())
	require.NoError(t, err)

	session, err := quiz.StartSession(bank)
	require.NoError(t, err)

	// Puntaje parcial a mitad de sesión, sin error
	_, err = session.SubmitAnswer(bank, 1)
	require.NoError(t, err)
	score := session.Score(bank)
	assert.LessOrEqual(t, score, len(session.Answers))
	assert.LessOrEqual(t, score, bank.Len())
	assert.Equal(t, 1, score)
}

func TestSubmitAnswerIndiceFueraDeRango(t *testing.T) {
	bank, err := quiz.NewBank(validQuestions())
	require.NoError(t, err)

	session, err := quiz.StartSession(bank)
	require.NoError(t, err)

	for _, chosen := range []int{-1, 2, 99} {
		_, err = session.SubmitAnswer(bank, chosen)
		require.ErrorIs(t, err, quiz.ErrOutOfRange)
		// El estado queda intacto
		assert.Equal(t, 0, session.CurrentIndex)
		assert.Empty(t, session.Answers)
	}
}

func TestSubmitAnswerSesionCompleta(t *testing.T) {
	bank, err := quiz.NewBank(validQuestions())
	require.NoError(t, err)

	session, err := quiz.StartSession(bank)
	require.NoError(t, err)

	_, err = session.SubmitAnswer(bank, 0)
	require.NoError(t, err)
	_, err = session.SubmitAnswer(bank, 0)
	require.NoError(t, err)
	require.True(t, session.IsComplete(bank))

	// El rechazo es idempotente: las respuestas no cambian
	for i := 0; i < 3; i++ {
		_, err = session.SubmitAnswer(bank, 0)
		require.ErrorIs(t, err, quiz.ErrAlreadyComplete)
		assert.Len(t, session.Answers, 2)
		assert.Equal(t, 2, session.CurrentIndex)
	}
}

func TestCurrentQuestion(t *testing.T) {
	bank, err := quiz.NewBank(validQuestions())
	require.NoError(t, err)

	session, err := quiz.StartSession(bank)
	require.NoError(t, err)

	q, ok := session.CurrentQuestion(bank)
	require.True(t, ok)
	assert.Equal(t, "Prompt Chaining", q.Title)

	_, err = session.SubmitAnswer(bank, 0)
	require.NoError(t, err)
	q, ok = session.CurrentQuestion(bank)
	require.True(t, ok)
	assert.Equal(t, "Tool-Calling Agent", q.Title)

	_, err = session.SubmitAnswer(bank, 0)
	require.NoError(t, err)
	_, ok = session.CurrentQuestion(bank)
	assert.False(t, ok)
}
