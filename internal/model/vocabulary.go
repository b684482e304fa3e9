package model

import "time"

// Vocabulary is one learned English word. The IPA, Meaning, Usage and
// CulturalContext columns hold JSON documents produced by the AI generator
// (or plain strings for manually entered legacy rows).
type Vocabulary struct {
	ID              string `gorm:"primaryKey"`
	Word            string `gorm:"uniqueIndex"`
	IPA             string
	Meaning         string
	Usage           string
	CulturalContext string
	IsFavorite      bool `gorm:"default:false"`
	ReviewCount     int  `gorm:"default:0"`
	LastReviewedAt  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
