package scout

import (
	"github.com/athleo/athleo-backend/internal/user"
	"gorm.io/gorm"
)

type ScoutRepository interface {
	CreateReport(r *ScoutReport) error
	Reports(athleteID, scoutID uint, limit int) ([]ScoutReport, error)
	ReportsForAthlete(athleteID uint, limit int) ([]ReportView, error)
	ObservedAthletes(scoutID uint, limit int) ([]ObservedAthlete, error)
}

type scoutRepository struct {
	db *gorm.DB
}

func NewScoutRepository(db *gorm.DB) ScoutRepository {
	return &scoutRepository{db: db}
}

func (r *scoutRepository) CreateReport(report *ScoutReport) error {
	if report.Strengths == nil {
		report.Strengths = []string{}
	}
	if report.Weaknesses == nil {
		report.Weaknesses = []string{}
	}
	return r.db.Create(report).Error
}

func (r *scoutRepository) Reports(athleteID, scoutID uint, limit int) ([]ScoutReport, error) {
	q := r.db.Model(&ScoutReport{})
	if athleteID != 0 {
		q = q.Where("athlete_id = ?", athleteID)
	}
	if scoutID != 0 {
		q = q.Where("scout_id = ?", scoutID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var reports []ScoutReport
	err := q.Order("created_at DESC, id DESC").Find(&reports).Error
	return reports, err
}

func (r *scoutRepository) ReportsForAthlete(athleteID uint, limit int) ([]ReportView, error) {
	reports, err := r.Reports(athleteID, 0, limit)
	if err != nil {
		return nil, err
	}

	views := make([]ReportView, 0, len(reports))
	for _, report := range reports {
		var name string
		err := r.db.Table("users").
			Select("full_name").
			Where("id = ? AND deleted_at IS NULL", report.ScoutID).
			Scan(&name).Error
		if err != nil {
			return nil, err
		}
		views = append(views, ReportView{ScoutReport: report, ScoutName: name})
	}
	return views, nil
}

type observedRow struct {
	AthleteID   uint
	FullName    string
	Avatar      string
	ReportCount int64
}

func (r *scoutRepository) ObservedAthletes(scoutID uint, limit int) ([]ObservedAthlete, error) {
	q := r.db.Table("scout_reports").
		Select("scout_reports.athlete_id, users.full_name, users.avatar, COUNT(*) AS report_count").
		Joins("JOIN users ON users.id = scout_reports.athlete_id AND users.deleted_at IS NULL").
		Where("scout_reports.scout_id = ? AND scout_reports.deleted_at IS NULL", scoutID).
		Group("scout_reports.athlete_id, users.full_name, users.avatar").
		Order("MAX(scout_reports.created_at) DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []observedRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	observed := make([]ObservedAthlete, 0, len(rows))
	for _, row := range rows {
		var latest ScoutReport
		err := r.db.
			Where("scout_id = ? AND athlete_id = ?", scoutID, row.AthleteID).
			Order("created_at DESC, id DESC").
			First(&latest).Error
		if err != nil {
			return nil, err
		}
		observed = append(observed, ObservedAthlete{
			Athlete:      user.Summary{ID: row.AthleteID, FullName: row.FullName, Avatar: row.Avatar},
			ReportCount:  row.ReportCount,
			LatestRating: latest.Rating,
		})
	}
	return observed, nil
}
