package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/backsoul/agentquiz/pkg/quiz"
	"github.com/backsoul/agentquiz/pkg/redis"
	"github.com/backsoul/agentquiz/pkg/sheets"
)

// ReportService arma el reporte final de una sesión: puntaje local,
// detalle por pregunta y comparación con el agregado de todos los
// participantes.
type ReportService struct {
	sink        sheets.Sink
	redisClient *redis.RedisClient
	bank        *quiz.Bank
}

// NewReportService crea una nueva instancia del servicio de reportes
func NewReportService(sink sheets.Sink, redisClient *redis.RedisClient, bank *quiz.Bank) *ReportService {
	return &ReportService{
		sink:        sink,
		redisClient: redisClient,
		bank:        bank,
	}
}

// Render arma el reporte de la sesión. El puntaje y el detalle por
// pregunta salen siempre de datos locales; el agregado se lee del sink y
// si esa lectura falla se degrada al conteo de Redis, y en el peor caso
// queda marcado como no disponible. Render nunca falla por culpa del sink.
func (s *ReportService) Render(ctx context.Context, session *quiz.Session) *models.Report {
	score := session.Score(s.bank)
	total := s.bank.Len()

	percent := 0.0
	if total > 0 {
		percent = math.Round(float64(score)/float64(total)*1000) / 10
	}

	report := &models.Report{
		SessionID: session.ID,
		Score:     score,
		Total:     total,
		Percent:   percent,
		Verdict:   verdict(percent),
		Items:     s.buildItems(session),
		Aggregate: s.aggregate(ctx),
	}

	return report
}

// buildItems empareja cada respuesta con su pregunta por id
func (s *ReportService) buildItems(session *quiz.Session) []models.ReportItem {
	items := make([]models.ReportItem, 0, len(session.Answers))
	for _, answer := range session.Answers {
		question, ok := s.bank.ByID(answer.QuestionID)
		if !ok {
			continue
		}

		items = append(items, models.ReportItem{
			QuestionID:   question.ID,
			Number:       answer.QuestionNumber,
			Title:        question.Title,
			ChosenLabel:  answer.ChosenLabel,
			CorrectLabel: question.CorrectLabel(),
			IsCorrect:    answer.ChosenIndex == question.CorrectIndex,
			Explanation:  question.Explanation,
		})
	}
	return items
}

// aggregate intenta la hoja primero, después el conteo local de Redis
func (s *ReportService) aggregate(ctx context.Context) models.AggregateStats {
	if s.sink != nil {
		rows, err := s.sink.ReadAllRows(ctx)
		if err == nil {
			return aggregateFromRows(rows, s.bank)
		}
		log.Printf("⚠️ Error leyendo agregados de la hoja: %v", err)
	}

	stats, err := localAggregate(s.redisClient, s.bank)
	if err != nil {
		log.Printf("⚠️ Agregados no disponibles: %v", err)
		return models.AggregateStats{Available: false}
	}

	return stats
}

// aggregateFromRows cuenta los votos de todas las filas de la hoja.
// Las filas tienen el formato Session ID | Question Number | User Vote |
// Correct Answer | Timestamp; la primera puede ser el encabezado.
func aggregateFromRows(rows [][]interface{}, bank *quiz.Bank) models.AggregateStats {
	stats := models.AggregateStats{
		Available: true,
		Source:    "sheet",
		Votes:     map[string]int{},
	}

	perQuestion := make(map[int]*models.QuestionTally)
	order := make([]int, 0, bank.Len())
	for _, q := range bank.Questions() {
		perQuestion[q.ID] = &models.QuestionTally{
			QuestionID: q.ID,
			Title:      q.Title,
			Votes:      map[string]int{},
		}
		order = append(order, q.ID)
	}

	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		if fmt.Sprint(row[0]) == "Session ID" {
			// Encabezado
			continue
		}

		// "Question Number" es 1-based: lo escribe buildVoteRows con
		// answer.QuestionNumber. Hojas con números 0-based no son
		// compatibles con este conteo.
		number, err := cellToInt(row[1])
		if err != nil {
			continue
		}
		question, ok := bank.At(number - 1)
		if !ok {
			continue
		}
		vote := fmt.Sprint(row[2])

		tally := perQuestion[question.ID]
		tally.Votes[vote]++
		tally.Total++
		stats.Votes[vote]++
		stats.TotalVotes++
	}

	for _, id := range order {
		tally := perQuestion[id]
		tally.Percent = percentages(tally.Votes, tally.Total)
		stats.PerQuestion = append(stats.PerQuestion, *tally)
	}
	stats.Percent = percentages(stats.Votes, stats.TotalVotes)

	return stats
}

// cellToInt las celdas llegan como string o como número según el parseo
// de la API
func cellToInt(cell interface{}) (int, error) {
	switch v := cell.(type) {
	case string:
		return strconv.Atoi(v)
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("celda no numérica: %v", cell)
	}
}

// verdict texto según el porcentaje de aciertos, mismos umbrales que la
// versión original del quiz
func verdict(percent float64) string {
	switch {
	case percent >= 80:
		return "🏆 ¡Experto! Realmente entiendes la diferencia entre agentes y workflows."
	case percent >= 60:
		return "🎯 ¡Bastante bien! Le estás agarrando la mano."
	default:
		return "🤔 Sigue estudiando, la distinción agente/workflow es engañosa."
	}
}
