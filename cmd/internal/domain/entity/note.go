package entity

import "time"

// Note is the only persisted record of the service. Timestamps are assigned
// by the service layer and stored in UTC.
type Note struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"size:128;not null"`
	Content   *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index;default:CURRENT_TIMESTAMP;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;autoUpdateTime:false"`
}
