package services

import (
	"fmt"
	"math"

	"github.com/backsoul/agentquiz/pkg/models"
	"github.com/backsoul/agentquiz/pkg/quiz"
	"github.com/backsoul/agentquiz/pkg/redis"
)

// localAggregate arma las estadísticas agregadas desde los contadores de
// Redis. Es la fuente del tally en vivo y el respaldo del reporte cuando
// la hoja de cálculo no responde.
func localAggregate(redisClient *redis.RedisClient, bank *quiz.Bank) (models.AggregateStats, error) {
	if redisClient == nil {
		return models.AggregateStats{}, fmt.Errorf("redis no disponible")
	}

	stats := models.AggregateStats{
		Available: true,
		Source:    "redis",
		Votes:     map[string]int{},
	}

	for _, q := range bank.Questions() {
		votes, err := redisClient.GetVotes(q.ID)
		if err != nil {
			return models.AggregateStats{}, err
		}

		tally := models.QuestionTally{
			QuestionID: q.ID,
			Title:      q.Title,
			Votes:      votes,
		}
		for label, count := range votes {
			tally.Total += count
			stats.Votes[label] += count
			stats.TotalVotes += count
		}
		tally.Percent = percentages(tally.Votes, tally.Total)

		stats.PerQuestion = append(stats.PerQuestion, tally)
	}

	stats.Percent = percentages(stats.Votes, stats.TotalVotes)
	return stats, nil
}

// percentages convierte conteos por opción en porcentajes redondeados a un
// decimal. Con total cero devuelve el mapa vacío.
func percentages(votes map[string]int, total int) map[string]float64 {
	percent := make(map[string]float64, len(votes))
	if total == 0 {
		return percent
	}
	for label, count := range votes {
		percent[label] = math.Round(float64(count)/float64(total)*1000) / 10
	}
	return percent
}
