package plan

import (
	"time"

	"github.com/athleo/athleo-backend/internal/user"
	"github.com/athleo/athleo-backend/internal/workout"
	"gorm.io/gorm"
)

type PlanRepository interface {
	Create(p *TrainingPlan) error
	ByID(id uint) (*TrainingPlan, error)
	List(coachID uint, isActive *bool, limit int) ([]TrainingPlan, error)
	Update(p *TrainingPlan) error

	AddWorkout(planID, workoutID uint) (added bool, err error)
	WorkoutsOf(planID uint) ([]workout.Workout, error)
	WorkoutByID(id uint) (*workout.Workout, error)

	AssignToAthletes(p *TrainingPlan, athleteIDs []uint, scheduledDate time.Time) (int, error)
	Stats(p *TrainingPlan) (*PlanStats, error)
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(p *TrainingPlan) error {
	if p.Goals == nil {
		p.Goals = []string{}
	}
	return r.db.Create(p).Error
}

func (r *planRepository) ByID(id uint) (*TrainingPlan, error) {
	var p TrainingPlan
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepository) List(coachID uint, isActive *bool, limit int) ([]TrainingPlan, error) {
	q := r.db.Model(&TrainingPlan{})
	if coachID != 0 {
		q = q.Where("coach_id = ?", coachID)
	}
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var plans []TrainingPlan
	err := q.Order("created_at DESC").Find(&plans).Error
	return plans, err
}

func (r *planRepository) Update(p *TrainingPlan) error {
	return r.db.Save(p).Error
}

// AddWorkout links the workout into the plan, succeeding quietly when the
// link already exists.
func (r *planRepository) AddWorkout(planID, workoutID uint) (bool, error) {
	var added bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&PlanWorkout{}).
			Where("plan_id = ? AND workout_id = ?", planID, workoutID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		added = true
		return tx.Create(&PlanWorkout{PlanID: planID, WorkoutID: workoutID}).Error
	})
	return added, err
}

func (r *planRepository) WorkoutsOf(planID uint) ([]workout.Workout, error) {
	linked := r.db.Model(&PlanWorkout{}).
		Select("workout_id").
		Where("plan_id = ?", planID)

	var workouts []workout.Workout
	err := r.db.Where("id IN (?)", linked).Order("id ASC").Find(&workouts).Error
	return workouts, err
}

func (r *planRepository) WorkoutByID(id uint) (*workout.Workout, error) {
	var w workout.Workout
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// AssignToAthletes materializes the plan: every linked workout is copied as a
// fresh scheduled workout for each athlete, all inside one transaction.
// Returns the number of workouts created.
func (r *planRepository) AssignToAthletes(p *TrainingPlan, athleteIDs []uint, scheduledDate time.Time) (int, error) {
	templates, err := r.WorkoutsOf(p.ID)
	if err != nil {
		return 0, err
	}

	created := 0
	err = r.db.Transaction(func(tx *gorm.DB) error {
		for _, athleteID := range athleteIDs {
			for _, tmpl := range templates {
				date := scheduledDate
				copyW := workout.Workout{
					UserID:        athleteID,
					Name:          tmpl.Name,
					Type:          tmpl.Type,
					Duration:      tmpl.Duration,
					Objective:     tmpl.Objective,
					Difficulty:    tmpl.Difficulty,
					ScheduledDate: &date,
					Status:        workout.StatusScheduled,
				}
				if err := tx.Create(&copyW).Error; err != nil {
					return err
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *planRepository) Stats(p *TrainingPlan) (*PlanStats, error) {
	var workoutCount int64
	if err := r.db.Model(&PlanWorkout{}).Where("plan_id = ?", p.ID).Count(&workoutCount).Error; err != nil {
		return nil, err
	}

	var athleteCount int64
	if err := r.db.Model(&user.Player{}).Where("coach_id = ?", p.CoachID).Count(&athleteCount).Error; err != nil {
		return nil, err
	}

	return &PlanStats{
		PlanID:        p.ID,
		WorkoutCount:  workoutCount,
		Difficulty:    p.Difficulty,
		DurationWeeks: p.DurationWeeks,
		AthleteCount:  athleteCount,
	}, nil
}
