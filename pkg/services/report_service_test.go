package services_test

import (
	"context"
	"testing"

	"github.com/backsoul/agentquiz/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderConSinkCaido(t *testing.T) {
	bank := testBank(t)
	sink := &fakeSink{failAppend: true, failRead: true}
	voteService := services.NewVoteService(sink, nil, nil, bank)
	reportService := services.NewReportService(sink, nil, bank)

	// Respuestas [1, 1] contra índices correctos [1, 0] -> puntaje 1
	session := completedSession(t, bank, 1, 1)

	// El registro falla pero no debe impedir el reporte
	err := voteService.Record(context.Background(), session)
	require.Error(t, err)

	report := reportService.Render(context.Background(), session)
	require.NotNil(t, report)

	assert.Equal(t, session.ID, report.SessionID)
	assert.Equal(t, 1, report.Score)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 50.0, report.Percent)

	// Agregados marcados como no disponibles, sin romper el render
	assert.False(t, report.Aggregate.Available)

	require.Len(t, report.Items, 2)
	assert.True(t, report.Items[0].IsCorrect)
	assert.Equal(t, "Prompt Chaining", report.Items[0].Title)
	assert.False(t, report.Items[1].IsCorrect)
	assert.Equal(t, "Agent", report.Items[1].CorrectLabel)
	assert.NotEmpty(t, report.Items[1].Explanation)
}

func TestRenderConAgregadosDeLaHoja(t *testing.T) {
	bank := testBank(t)
	sink := &fakeSink{
		rows: [][]interface{}{
			{"Session ID", "Question Number", "User Vote", "Correct Answer", "Timestamp"},
			{"s1", "1", "Agent", "Workflow", "2025-08-01T10:00:00Z"},
			{"s1", "2", "Agent", "Agent", "2025-08-01T10:01:00Z"},
			{"s2", float64(1), "Workflow", "Workflow", "2025-08-01T11:00:00Z"},
			{"s2", float64(2), "Workflow", "Agent", "2025-08-01T11:01:00Z"},
			{"s3", "1", "Workflow", "Workflow", "2025-08-01T12:00:00Z"},
		},
	}
	reportService := services.NewReportService(sink, nil, bank)

	session := completedSession(t, bank, 1, 0)

	report := reportService.Render(context.Background(), session)
	require.NotNil(t, report)
	assert.Equal(t, 2, report.Score)
	assert.Equal(t, 100.0, report.Percent)

	agg := report.Aggregate
	require.True(t, agg.Available)
	assert.Equal(t, "sheet", agg.Source)
	assert.Equal(t, 5, agg.TotalVotes)
	assert.Equal(t, 2, agg.Votes["Agent"])
	assert.Equal(t, 3, agg.Votes["Workflow"])
	assert.Equal(t, 40.0, agg.Percent["Agent"])
	assert.Equal(t, 60.0, agg.Percent["Workflow"])

	require.Len(t, agg.PerQuestion, 2)
	primera := agg.PerQuestion[0]
	assert.Equal(t, 1, primera.QuestionID)
	assert.Equal(t, 3, primera.Total)
	assert.Equal(t, 1, primera.Votes["Agent"])
	assert.Equal(t, 2, primera.Votes["Workflow"])
	assert.InDelta(t, 33.3, primera.Percent["Agent"], 0.05)
}

func TestRenderPuntajeParcial(t *testing.T) {
	bank := testBank(t)
	reportService := services.NewReportService(nil, nil, bank)

	// Solo la primera pregunta respondida, correcta
	partial := partialSession(t, bank, 1)
	report := reportService.Render(context.Background(), partial)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Score)
	require.Len(t, report.Items, 1)
}
