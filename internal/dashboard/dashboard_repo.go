package dashboard

import (
	"time"

	"github.com/athleo/athleo-backend/internal/game"
	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/internal/workout"
	"gorm.io/gorm"
)

type DashboardRepository interface {
	CoachDashboard(coachUserID uint, teamID *uint, minLogs, windowDays int) (*CoachDashboard, error)
	PlayerDashboard(userID uint) (*PlayerDashboard, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) CoachDashboard(coachUserID uint, teamID *uint, minLogs, windowDays int) (*CoachDashboard, error) {
	out := &CoachDashboard{}
	now := time.Now()
	windowStart := now.AddDate(0, 0, -windowDays)

	var athleteIDs []uint
	if err := r.db.Model(&user.Player{}).
		Where("coach_id = ?", coachUserID).
		Pluck("user_id", &athleteIDs).Error; err != nil {
		return nil, err
	}
	out.TotalAthletes = int64(len(athleteIDs))

	if len(athleteIDs) > 0 {
		if err := r.db.Model(&user.User{}).
			Where("id IN ? AND is_active = ?", athleteIDs, true).
			Count(&out.ActiveAthletes).Error; err != nil {
			return nil, err
		}
		out.InactiveAthletes = out.TotalAthletes - out.ActiveAthletes

		// One pass over the window's logs covers both the average and the
		// low-activity count; athletes with no logs at all still count as low.
		type logCount struct {
			UserID uint
			Total  int64
		}
		var counts []logCount
		if err := r.db.Model(&workout.WorkoutLog{}).
			Select("user_id, COUNT(*) AS total").
			Where("user_id IN ? AND completed_at >= ?", athleteIDs, windowStart).
			Group("user_id").
			Scan(&counts).Error; err != nil {
			return nil, err
		}

		logsByAthlete := make(map[uint]int64, len(counts))
		var totalLogs int64
		for _, c := range counts {
			logsByAthlete[c.UserID] = c.Total
			totalLogs += c.Total
		}
		out.AvgWeeklyLogs = float64(totalLogs) / float64(len(athleteIDs))

		for _, id := range athleteIDs {
			if logsByAthlete[id] < int64(minLogs) {
				out.LowActivityAthletes++
			}
		}

		if err := r.db.Model(&workout.Workout{}).
			Where("user_id IN ? AND status = ? AND scheduled_date >= ?",
				athleteIDs, workout.StatusScheduled, now).
			Count(&out.UpcomingTrainings).Error; err != nil {
			return nil, err
		}
	}

	if teamID != nil {
		if err := r.db.Model(&game.Game{}).
			Where("(team1_id = ? OR team2_id = ?) AND status = ? AND game_date >= ?",
				*teamID, *teamID, game.StatusScheduled, now).
			Count(&out.UpcomingGames).Error; err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (r *dashboardRepository) PlayerDashboard(userID uint) (*PlayerDashboard, error) {
	out := &PlayerDashboard{}

	type statusCount struct {
		Status workout.Status
		Total  int64
	}
	var counts []statusCount
	if err := r.db.Model(&workout.Workout{}).
		Select("status, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		switch c.Status {
		case workout.StatusScheduled:
			out.ScheduledWorkouts = c.Total
		case workout.StatusInProgress:
			out.InProgressWorkouts = c.Total
		case workout.StatusCompleted:
			out.CompletedWorkouts = c.Total
		case workout.StatusSkipped:
			out.SkippedWorkouts = c.Total
		}
	}

	now := time.Now()
	if err := r.db.Model(&workout.WorkoutLog{}).
		Where("user_id = ? AND completed_at >= ?", userID, now.AddDate(0, 0, -7)).
		Count(&out.LogsThisWeek).Error; err != nil {
		return nil, err
	}

	var completedAts []time.Time
	if err := r.db.Model(&workout.WorkoutLog{}).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Pluck("completed_at", &completedAts).Error; err != nil {
		return nil, err
	}
	out.CurrentStreakDays = streakDays(completedAts, now)

	return out, nil
}

// streakDays counts consecutive calendar days with at least one log, walking
// back from today. A streak survives an empty today (the athlete may simply
// not have trained yet) but breaks on any earlier gap.
func streakDays(completedAts []time.Time, now time.Time) int {
	logged := make(map[string]bool, len(completedAts))
	for _, at := range completedAts {
		logged[at.Format("2006-01-02")] = true
	}

	day := now
	if !logged[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for logged[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
