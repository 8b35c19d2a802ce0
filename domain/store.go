package domain

import "time"

// CREATE TABLE stores (
//     id         BIGSERIAL PRIMARY KEY,
//     name       VARCHAR(255) NOT NULL,
//     email      VARCHAR(255) NOT NULL UNIQUE,
//     address    VARCHAR(400) NOT NULL,
//     owner_id   BIGINT REFERENCES users(id) ON DELETE SET NULL,
//     created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ
// );

type Store struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Address   string    `gorm:"column:address;size:400;not null" json:"address"`
	OwnerID   *uint     `gorm:"column:owner_id;index" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (Store) TableName() string {
	return "stores"
}

// StoreFilter narrows store listings. Search matches name or address;
// the remaining text fields are ANDed substring matches.
type StoreFilter struct {
	Search  string
	Name    string
	Email   string
	Address string
	Sort    Sort
}

// StoreWithRating is a store plus the aggregates derived from its ratings.
// UserRating is only set when the caller is known.
type StoreWithRating struct {
	ID            uint          `gorm:"column:id" json:"id"`
	Name          string        `gorm:"column:name" json:"name"`
	Email         string        `gorm:"column:email" json:"email"`
	Address       string        `gorm:"column:address" json:"address"`
	OwnerID       *uint         `gorm:"column:owner_id" json:"owner_id"`
	AverageRating AverageRating `gorm:"column:average_rating" json:"average_rating"`
	TotalRatings  int64         `gorm:"column:total_ratings" json:"total_ratings"`
	UserRating    *int          `gorm:"-" json:"user_rating,omitempty"`
}

// StoreSummary is the id/name pair listed on the owner dashboard.
type StoreSummary struct {
	ID   uint   `gorm:"column:id" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

type OwnerDashboard struct {
	Stores        []StoreSummary `json:"stores"`
	AverageRating AverageRating  `json:"averageRating"`
	Ratings       []OwnerRating  `json:"ratings"`
}

type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// StorePatch carries the admin-editable fields; nil leaves a field unchanged.
// A non-nil OwnerID of 0 clears the owner.
type StorePatch struct {
	Name    *string
	Email   *string
	Address *string
	OwnerID *uint
}
