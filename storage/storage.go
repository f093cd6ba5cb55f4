// Package storage persists analysis input and output. It is a
// collaborator of the analysis core, not part of it: detection works
// entirely on in-memory batches and never touches the database.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/driftline/driftline/model"
)

// PostRecord is the persisted shape of a collected post. List fields
// are stored as JSON columns, never as stringified Go values.
type PostRecord struct {
	Id            string `gorm:"primaryKey"`
	Platform      string
	UserId        string `gorm:"index"`
	Username      string
	Content       string
	CreatedAt     time.Time
	Engagement    model.EngagementCounts `gorm:"embedded;embeddedPrefix:engagement_"`
	Hashtags      datatypes.JSON
	Mentions      datatypes.JSON
	Language      string
	FollowerCount int
}

// CampaignRecord is one persisted detection finding.
type CampaignRecord struct {
	Id            uint `gorm:"primaryKey;autoIncrement"`
	DetectedAt    time.Time
	Hashtag       string `gorm:"index"`
	Volume        int
	UniqueUsers   int
	TimeSpanHours float64
	RiskScore     float64
	FirstSeen     time.Time
	LastSeen      time.Time
	Indicators    datatypes.JSON
	SampleUsers   datatypes.JSON
}

// AlertRecord is a write-once persisted alert.
type AlertRecord struct {
	Id        string `gorm:"primaryKey"`
	Type      string `gorm:"index"`
	Severity  string
	Title     string
	Payload   datatypes.JSON
	CreatedAt time.Time
}

// GetDBConnection gets a connection to the database specified by env.
func GetDBConnection() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "fail to connect to database")
	}
	return db, nil
}

// Store wraps the database handle with the persistence operations the
// pipeline needs.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&PostRecord{}, &CampaignRecord{}, &AlertRecord{}); err != nil {
		return nil, errors.Wrap(err, "fail to migrate analysis tables")
	}
	return &Store{db: db}, nil
}

// SavePosts upserts the batch by post id; recollecting the same posts
// is a no-op.
func (s *Store) SavePosts(posts []model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	records := make([]PostRecord, 0, len(posts))
	for _, post := range posts {
		var record PostRecord
		if err := copier.Copy(&record, &post); err != nil {
			return errors.Wrap(err, "fail to convert post "+post.Id)
		}
		record.Hashtags = mustJSON(post.Hashtags)
		record.Mentions = mustJSON(post.Mentions)
		records = append(records, record)
	}
	return s.db.Clauses(onConflictDoNothing()).Create(&records).Error
}

// SaveCampaigns appends the findings of one detection run.
func (s *Store) SaveCampaigns(campaigns []model.Campaign, detectedAt time.Time) error {
	if len(campaigns) == 0 {
		return nil
	}
	records := make([]CampaignRecord, 0, len(campaigns))
	for _, campaign := range campaigns {
		var record CampaignRecord
		if err := copier.Copy(&record, &campaign); err != nil {
			return errors.Wrap(err, "fail to convert campaign "+campaign.Hashtag)
		}
		record.Id = 0
		record.DetectedAt = detectedAt
		record.Indicators = mustJSON(campaign.Indicators)
		record.SampleUsers = mustJSON(campaign.SampleUsers)
		records = append(records, record)
	}
	return s.db.Create(&records).Error
}

// SaveAlerts persists alerts, skipping ids already written so alert
// records stay write-once.
func (s *Store) SaveAlerts(alerts []model.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	records := make([]AlertRecord, 0, len(alerts))
	for _, alert := range alerts {
		records = append(records, AlertRecord{
			Id:        alert.Id,
			Type:      alert.Type,
			Severity:  string(alert.Severity),
			Title:     alert.Title,
			Payload:   mustJSON(alert.Payload),
			CreatedAt: alert.CreatedAt,
		})
	}
	return s.db.Clauses(onConflictDoNothing()).Create(&records).Error
}

// RecentCampaigns returns findings detected after the cutoff, most
// risky first.
func (s *Store) RecentCampaigns(since time.Time, limit int) ([]CampaignRecord, error) {
	var records []CampaignRecord
	err := s.db.Where("detected_at >= ?", since).
		Order("risk_score desc").Limit(limit).Find(&records).Error
	return records, err
}

func onConflictDoNothing() clause.Expression {
	return clause.OnConflict{DoNothing: true}
}

func mustJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("null")
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		// Only reachable with unmarshalable payload values, which the
		// alert builders never produce.
		return datatypes.JSON("null")
	}
	return datatypes.JSON(encoded)
}
