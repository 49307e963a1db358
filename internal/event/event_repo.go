package event

import (
	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(e *Event) error
	ByID(id uint) (*Event, error)
	ListByUser(userID uint, filter EventFilter) ([]Event, error)
	ListByTeam(teamID uint, filter EventFilter) ([]Event, error)
	Update(e *Event) error
	Delete(e *Event) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(e *Event) error {
	return r.db.Create(e).Error
}

func (r *eventRepository) ByID(id uint) (*Event, error) {
	var e Event
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func applyFilter(q *gorm.DB, filter EventFilter) *gorm.DB {
	if filter.StartDate != nil {
		q = q.Where("start_time >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("start_time <= ?", *filter.EndDate)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	return q
}

func (r *eventRepository) ListByUser(userID uint, filter EventFilter) ([]Event, error) {
	var events []Event
	err := applyFilter(r.db.Where("user_id = ?", userID), filter).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

// ListByTeam unions the events of every player on the team.
func (r *eventRepository) ListByTeam(teamID uint, filter EventFilter) ([]Event, error) {
	members := r.db.Model(&user.Player{}).
		Select("user_id").
		Where("team_id = ?", teamID)

	var events []Event
	err := applyFilter(r.db.Where("user_id IN (?)", members), filter).
		Order("start_time ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepository) Update(e *Event) error {
	return r.db.Save(e).Error
}

func (r *eventRepository) Delete(e *Event) error {
	return r.db.Delete(e).Error
}
