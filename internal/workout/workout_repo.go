package workout

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidTransition = errors.New("invalid workout status transition")

type WorkoutRepository interface {
	Create(w *Workout) error
	ByID(id uint) (*Workout, error)
	ListByUser(userID uint, status Status, limit int) ([]Workout, error)
	Transition(w *Workout, next Status) error
	Complete(w *Workout, log *WorkoutLog) error
	LogsByUser(userID uint, limit int) ([]WorkoutLog, error)
}

type workoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(w *Workout) error {
	return r.db.Create(w).Error
}

func (r *workoutRepository) ByID(id uint) (*Workout, error) {
	var w Workout
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *workoutRepository) ListByUser(userID uint, status Status, limit int) ([]Workout, error) {
	q := r.db.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var workouts []Workout
	err := q.Order("created_at DESC").Limit(limit).Find(&workouts).Error
	return workouts, err
}

// Transition re-reads the row inside the transaction so a concurrent
// transition cannot slip a workout past a terminal state.
func (r *workoutRepository) Transition(w *Workout, next Status) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current Workout
		if err := tx.First(&current, w.ID).Error; err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(next) {
			return ErrInvalidTransition
		}
		return tx.Model(&Workout{}).Where("id = ?", w.ID).Update("status", next).Error
	})
}

// Complete flips the workout to completed and inserts its log in one
// transaction: on any failure neither the status change nor the log is
// visible.
func (r *workoutRepository) Complete(w *Workout, log *WorkoutLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current Workout
		if err := tx.First(&current, w.ID).Error; err != nil {
			return err
		}
		if !current.Status.CanTransitionTo(StatusCompleted) {
			return ErrInvalidTransition
		}
		if err := tx.Model(&Workout{}).Where("id = ?", w.ID).Update("status", StatusCompleted).Error; err != nil {
			return err
		}
		if log.CompletedAt.IsZero() {
			log.CompletedAt = time.Now()
		}
		return tx.Create(log).Error
	})
}

func (r *workoutRepository) LogsByUser(userID uint, limit int) ([]WorkoutLog, error) {
	var logs []WorkoutLog
	err := r.db.Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
