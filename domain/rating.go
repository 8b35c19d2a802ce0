package domain

import (
	"math"
	"strconv"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// CREATE TABLE ratings (
//     id         BIGSERIAL PRIMARY KEY,
//     user_id    BIGINT NOT NULL REFERENCES users(id)  ON DELETE CASCADE,
//     store_id   BIGINT NOT NULL REFERENCES stores(id) ON DELETE CASCADE,
//     rating     SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
//     created_at TIMESTAMPTZ,
//     UNIQUE (user_id, store_id)
// );

type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_ratings_user_store,priority:1" json:"user_id"`
	StoreID   uint      `gorm:"column:store_id;not null;uniqueIndex:idx_ratings_user_store,priority:2;index" json:"store_id"`
	Rating    int       `gorm:"column:rating;not null;check:chk_ratings_rating,rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Store     *Store    `gorm:"foreignKey:StoreID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Rating) TableName() string {
	return "ratings"
}

func ValidRating(v int) bool {
	return v >= MinRating && v <= MaxRating
}

// UserRating is one of the caller's own ratings, joined with the rated store.
type UserRating struct {
	ID           uint      `gorm:"column:id" json:"id"`
	Rating       int       `gorm:"column:rating" json:"rating"`
	StoreID      uint      `gorm:"column:store_id" json:"store_id"`
	StoreName    string    `gorm:"column:store_name" json:"store_name"`
	StoreAddress string    `gorm:"column:store_address" json:"store_address"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// OwnerRating is a rating on one of an owner's stores, joined with the rater.
type OwnerRating struct {
	ID        uint      `gorm:"column:id" json:"id"`
	UserID    uint      `gorm:"column:user_id" json:"user_id"`
	StoreID   uint      `gorm:"column:store_id" json:"store_id"`
	Rating    int       `gorm:"column:rating" json:"rating"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UserName  string    `gorm:"column:user_name" json:"user_name"`
	UserEmail string    `gorm:"column:user_email" json:"user_email"`
	StoreName string    `gorm:"column:store_name" json:"store_name"`
}

// AverageRating is a mean star value, rendered with exactly one decimal place.
type AverageRating float64

func NewAverageRating(v float64) AverageRating {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return AverageRating(math.Round(v*10) / 10)
}

func (a AverageRating) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(math.Round(float64(a)*10)/10, 'f', 1, 64)), nil
}
