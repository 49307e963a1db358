package dashboard

// CoachDashboard aggregates a coach's roster at read time. Nothing here is
// stored; every number is folded from the underlying rows on each request.
type CoachDashboard struct {
	TotalAthletes    int64 `json:"total_athletes"`
	ActiveAthletes   int64 `json:"active_athletes"`
	InactiveAthletes int64 `json:"inactive_athletes"`
	// Average completed-workout logs per athlete over the trailing low-activity
	// window.
	AvgWeeklyLogs       float64 `json:"avg_weekly_logs"`
	UpcomingTrainings   int64   `json:"upcoming_trainings"`
	UpcomingGames       int64   `json:"upcoming_games"`
	LowActivityAthletes int64   `json:"low_activity_athletes"`
}

// PlayerDashboard summarizes an athlete's own training activity.
type PlayerDashboard struct {
	ScheduledWorkouts  int64 `json:"scheduled_workouts"`
	InProgressWorkouts int64 `json:"in_progress_workouts"`
	CompletedWorkouts  int64 `json:"completed_workouts"`
	SkippedWorkouts    int64 `json:"skipped_workouts"`
	// Consecutive days with at least one log, counting back from today
	// (or yesterday, when today has no log yet).
	CurrentStreakDays int   `json:"current_streak_days"`
	LogsThisWeek      int64 `json:"logs_this_week"`
}
