package analytics

import (
	"math"
	"time"

	"nekomate-backend/internal/models"
)

// Pure read-side computations over already-fetched collections. Callers
// fetch at most the trailing 30 days of session history; nothing here pages
// or streams.

func roundMinutes(seconds int) int {
	return int(math.Round(float64(seconds) / 60.0))
}

// ComputeDailyStats folds sessions into one bucket per calendar day over
// the trailing window [now-days+1, now], ascending. Days without sessions
// stay zero-filled; sessions dated outside the window are ignored.
func ComputeDailyStats(sessions []models.StudySession, days int, now time.Time) []models.DailyStats {
	if days <= 0 {
		return []models.DailyStats{}
	}

	stats := make([]models.DailyStats, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, -(days - 1 - i)).Format("2006-01-02")
		stats[i] = models.DailyStats{Date: date}
		index[date] = i
	}

	for _, s := range sessions {
		i, ok := index[s.Date]
		if !ok {
			continue
		}
		stats[i].TotalMinutes += roundMinutes(s.DurationSeconds)
		stats[i].Sessions++
	}

	return stats
}

// ComputeTotals returns total focus minutes, session count, and the average
// session length in minutes (0 when there are no sessions).
func ComputeTotals(sessions []models.StudySession) (totalMinutes, totalSessions, averageMinutes int) {
	sum := 0
	for _, s := range sessions {
		sum += s.DurationSeconds
	}

	totalMinutes = roundMinutes(sum)
	totalSessions = len(sessions)
	if totalSessions > 0 {
		averageMinutes = int(math.Round(float64(totalMinutes) / float64(totalSessions)))
	}
	return totalMinutes, totalSessions, averageMinutes
}

// ComputeWeeklyFocus sums the durations of sessions started in the last
// seven days, in minutes.
func ComputeWeeklyFocus(sessions []models.StudySession, now time.Time) int {
	cutoff := now.Add(-7 * 24 * time.Hour)
	sum := 0
	for _, s := range sessions {
		if !s.StartedAt.Before(cutoff) {
			sum += s.DurationSeconds
		}
	}
	return roundMinutes(sum)
}

// ComputeTaskStats scans the user's tasks for completion counts. An empty
// task list yields a zero completion rate, not a division error.
func ComputeTaskStats(todos []models.Todo) models.TaskStats {
	total := len(todos)
	completed := 0
	for _, t := range todos {
		if t.Completed {
			completed++
		}
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return models.TaskStats{
		Total:          total,
		Completed:      completed,
		Active:         total - completed,
		CompletionRate: rate,
	}
}

// BuildAnalyticsData composes the full overview from a 30-day session slice
// and the user's tasks: totals and monthly focus over the whole slice,
// daily buckets over the last 7 days, weekly focus over the last 7 days.
func BuildAnalyticsData(sessions []models.StudySession, todos []models.Todo, now time.Time) models.AnalyticsData {
	totalMinutes, totalSessions, averageMinutes := ComputeTotals(sessions)

	return models.AnalyticsData{
		TotalFocusTime:   totalMinutes,
		TotalSessions:    totalSessions,
		AverageSession:   averageMinutes,
		DailyStats:       ComputeDailyStats(sessions, 7, now),
		TaskStats:        ComputeTaskStats(todos),
		WeeklyFocusTime:  ComputeWeeklyFocus(sessions, now),
		MonthlyFocusTime: totalMinutes,
	}
}
