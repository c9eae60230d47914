package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/backsoul/agentquiz/pkg/quiz"
	"github.com/backsoul/agentquiz/pkg/services"
	"github.com/backsoul/agentquiz/pkg/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSink implementación en memoria de sheets.Sink para los tests
type fakeSink struct {
	appendCalls int
	rows        [][]interface{}
	failAppend  bool
	failRead    bool
}

func (f *fakeSink) AppendRows(ctx context.Context, rows [][]interface{}) error {
	f.appendCalls++
	if f.failAppend {
		return &sheets.SinkError{Op: "append", Err: errors.New("cuota excedida")}
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeSink) ReadAllRows(ctx context.Context) ([][]interface{}, error) {
	if f.failRead {
		return nil, &sheets.SinkError{Op: "read", Err: errors.New("sin conexión")}
	}
	return f.rows, nil
}

func testBank(t *testing.T) *quiz.Bank {
	t.Helper()
	bank, err := quiz.NewBank([]models.Question{
		{
			ID:           1,
			Title:        "Prompt Chaining",
			Code:         "def generate_content(topic): ...",
			Choices:      []string{"Agent", "Workflow"},
			CorrectIndex: 1,
			Explanation:  "Secuencia predefinida de pasos.",
		},
		{
			ID:           2,
			Title:        "Tool-Calling Agent",
			Code:         "def solve_math_problem(question): ...",
			Choices:      []string{"Agent", "Workflow"},
			CorrectIndex: 0,
			Explanation:  "El LLM controla su propio flujo.",
		},
	})
	require.NoError(t, err)
	return bank
}

func completedSession(t *testing.T, bank *quiz.Bank, chosen ...int) *quiz.Session {
	t.Helper()
	session, err := quiz.StartSession(bank)
	require.NoError(t, err)
	for _, c := range chosen {
		_, err = session.SubmitAnswer(bank, c)
		require.NoError(t, err)
	}
	require.True(t, session.IsComplete(bank))
	return session
}

func partialSession(t *testing.T, bank *quiz.Bank, chosen ...int) *quiz.Session {
	t.Helper()
	session, err := quiz.StartSession(bank)
	require.NoError(t, err)
	for _, c := range chosen {
		_, err = session.SubmitAnswer(bank, c)
		require.NoError(t, err)
	}
	return session
}

func TestRecordAgregaUnaFilaPorVoto(t *testing.T) {
	bank := testBank(t)
	sink := &fakeSink{}
	// Sin Redis ni hub: el servicio degrada a solo-sink
	voteService := services.NewVoteService(sink, nil, nil, bank)

	session := completedSession(t, bank, 1, 1)

	err := voteService.Record(context.Background(), session)
	require.NoError(t, err)

	// Una sola llamada de append con todas las filas
	assert.Equal(t, 1, sink.appendCalls)
	require.Len(t, sink.rows, 2)

	// Session ID | Question Number | User Vote | Correct Answer | Timestamp
	fila := sink.rows[0]
	require.Len(t, fila, 5)
	assert.Equal(t, session.ID, fila[0])
	assert.Equal(t, 1, fila[1])
	assert.Equal(t, "Workflow", fila[2])
	assert.Equal(t, "Workflow", fila[3])
	assert.NotEmpty(t, fila[4])

	fila = sink.rows[1]
	assert.Equal(t, 2, fila[1])
	assert.Equal(t, "Workflow", fila[2])
	assert.Equal(t, "Agent", fila[3])
}

func TestRecordSinkFalla(t *testing.T) {
	bank := testBank(t)
	sink := &fakeSink{failAppend: true}
	voteService := services.NewVoteService(sink, nil, nil, bank)

	session := completedSession(t, bank, 0, 0)

	err := voteService.Record(context.Background(), session)
	require.Error(t, err)

	var sinkErr *sheets.SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "append", sinkErr.Op)

	// Un solo intento, sin reintentos
	assert.Equal(t, 1, sink.appendCalls)
}

func TestRecordSesionIncompleta(t *testing.T) {
	bank := testBank(t)
	sink := &fakeSink{}
	voteService := services.NewVoteService(sink, nil, nil, bank)

	session, err := quiz.StartSession(bank)
	require.NoError(t, err)

	err = voteService.Record(context.Background(), session)
	require.Error(t, err)
	assert.Zero(t, sink.appendCalls)
}

func TestRecordModoLocal(t *testing.T) {
	bank := testBank(t)
	// sink nil: modo local, no es un error
	voteService := services.NewVoteService(nil, nil, nil, bank)

	session := completedSession(t, bank, 0, 1)

	err := voteService.Record(context.Background(), session)
	require.NoError(t, err)
}
