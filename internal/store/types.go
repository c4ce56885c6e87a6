package store

import (
	"time"

	"mutt/internal/bloodline"
)

type MuttInput struct {
	TokenID         int64
	Personality     string
	PersonalityDesc string
	Breeder         string
	ParentA         int64
	ParentB         int64
	Bloodline       bloodline.Grade
}

type Mutt struct {
	TokenID         int64            `json:"tokenId"`
	Personality     string           `json:"personality"`
	PersonalityDesc string           `json:"personalityDesc"`
	Breeder         string           `json:"breeder"`
	ParentA         int64            `json:"parentA"`
	ParentB         int64            `json:"parentB"`
	Bloodline       bloodline.Grade  `json:"bloodline"`
	AvgRating       float64          `json:"avgRating"`
	TotalReviews    int              `json:"totalReviews"`
	PurebloodRoute  *bloodline.Route `json:"purebloodRoute"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// Node converts the stored row into the evaluator's view of a mutt.
func (m Mutt) Node() bloodline.Mutt {
	return bloodline.Mutt{
		TokenID:      m.TokenID,
		ParentA:      m.ParentA,
		ParentB:      m.ParentB,
		AvgRating:    m.AvgRating,
		TotalReviews: m.TotalReviews,
	}
}

type MuttSummary struct {
	TokenID      int64           `json:"tokenId"`
	Personality  string          `json:"personality"`
	Breeder      string          `json:"breeder"`
	Bloodline    bloodline.Grade `json:"bloodline"`
	AvgRating    float64         `json:"avgRating"`
	TotalReviews int             `json:"totalReviews"`
}

type ListFilter struct {
	Bloodline string
	Breeder   string
	Limit     int
}

type RatingInput struct {
	TokenID int64
	Voter   string
	Score   int
}

type RatingStats struct {
	AvgRating    float64
	TotalReviews int
}

type SacredSync struct {
	Promoted int64 `json:"promoted"`
	Restored int64 `json:"restored"`
}

type ActivityInput struct {
	Type    string
	Actor   string
	TokenID int64
	Detail  map[string]any
}

type Activity struct {
	ID        int64          `json:"id"`
	Type      string         `json:"type"`
	Actor     string         `json:"actor"`
	TokenID   int64          `json:"tokenId"`
	Detail    map[string]any `json:"detail"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ParentRef is a parent pointer that does not resolve to a stored mutt.
type ParentRef struct {
	TokenID  int64
	Side     bloodline.Side
	ParentID int64
}
