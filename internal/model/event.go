package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/thep200/github-event-tracker/cfg"
	"github.com/thep200/github-event-tracker/pkg/db"
	"github.com/thep200/github-event-tracker/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Event là một sự kiện GitHub đã chuẩn hoá được lưu trong database.
// Khoá chính là id sự kiện từ GitHub, insert trùng id bị bỏ qua âm thầm.
type Event struct {
	Model
	ID          string    `json:"id" gorm:"column:id;type:varchar(32);primaryKey"`
	Org         string    `json:"org" gorm:"column:org;type:varchar(255);not null;index:idx_org_repo"`
	Repo        string    `json:"repo" gorm:"column:repo;type:varchar(255);not null;index:idx_org_repo"`
	Username    string    `json:"username" gorm:"column:username;type:varchar(255);not null"`
	Avatar      string    `json:"avatar" gorm:"column:avatar;type:varchar(512);not null"`
	Type        string    `json:"type" gorm:"column:type;type:varchar(64);not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;not null;index"`
	Data        string    `json:"data" gorm:"column:data;type:json"`
	IsSensitive bool      `json:"is_sensitive" gorm:"column:is_sensitive;default:false"`
}

func NewEvent(config *cfg.Config, logger log.Logger, db *db.Mysql) (*Event, error) {
	event := &Event{
		Model: Model{
			Config: config,
			Logger: logger,
			Mysql:  db,
		},
	}
	return event, nil
}

func (e *Event) TableName() string {
	return "events"
}

// FindLatestCreatedAt trả về created_at mới nhất đã lưu cho (org, repo).
// Trả về ok=false khi chưa có bản ghi nào.
func (e *Event) FindLatestCreatedAt(org, repo string) (time.Time, bool, error) {
	db, err := e.Mysql.Db()
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get database connection: %w", err)
	}

	var latest Event
	result := db.Select("created_at").
		Where("org = ? AND repo = ?", org, repo).
		Order("created_at DESC").
		First(&latest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("failed to query latest event: %w", result.Error)
	}

	return latest.CreatedAt, true, nil
}

// CreateBatch lưu một loạt sự kiện, bỏ qua các id đã tồn tại.
// Trả về số bản ghi thực sự được insert.
func (e *Event) CreateBatch(events []Event) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	db, err := e.Mysql.Db()
	if err != nil {
		return 0, fmt.Errorf("failed to get database connection: %w", err)
	}

	var inserted int64
	err = db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).CreateInBatches(events, 100)

		if result.Error != nil {
			return fmt.Errorf("failed to batch create events: %w", result.Error)
		}

		inserted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// FindByOrgRepo trả về các sự kiện của một repository, mới nhất trước
func (e *Event) FindByOrgRepo(org, repo string, offset, limit int) ([]Event, int64, error) {
	db, err := e.Mysql.Db()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get database connection: %w", err)
	}

	var events []Event
	result := db.Where("org = ? AND repo = ?", org, repo).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&events)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("failed to query events: %w", result.Error)
	}

	var total int64
	if err := db.Model(&Event{}).Where("org = ? AND repo = ?", org, repo).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	return events, total, nil
}

// DistinctOrgs trả về danh sách org đã có sự kiện được lưu
func (e *Event) DistinctOrgs() ([]string, error) {
	db, err := e.Mysql.Db()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	var orgs []string
	result := db.Model(&Event{}).Distinct("org").Order("org").Pluck("org", &orgs)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query orgs: %w", result.Error)
	}

	return orgs, nil
}

// DistinctRepos trả về danh sách repo đã có sự kiện được lưu cho một org
func (e *Event) DistinctRepos(org string) ([]string, error) {
	db, err := e.Mysql.Db()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	var repos []string
	result := db.Model(&Event{}).Where("org = ?", org).Distinct("repo").Order("repo").Pluck("repo", &repos)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to query repos: %w", result.Error)
	}

	return repos, nil
}
