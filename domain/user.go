package domain

import (
	"time"
)

// CREATE TABLE users (
//     id         BIGSERIAL PRIMARY KEY,
//     name       VARCHAR(60)  NOT NULL,
//     email      VARCHAR(255) NOT NULL UNIQUE,
//     password   VARCHAR(255) NOT NULL,
//     address    VARCHAR(400),
//     role       VARCHAR(20)  NOT NULL DEFAULT 'normal_user',
//     created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ
// );

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:60;not null" json:"name"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	Address   string    `gorm:"column:address;size:400" json:"address"`
	Role      Role      `gorm:"column:role;size:20;not null;default:normal_user;index" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserFilter narrows admin user listings. Text filters are substring matches.
type UserFilter struct {
	Name    string
	Email   string
	Address string
	Role    Role
	Sort    Sort
}

// UserDetail is the admin view of a user; owners also carry their pooled average.
type UserDetail struct {
	User
	AverageRating *AverageRating `json:"averageRating,omitempty"`
}

// UserPatch carries the admin-editable fields; nil leaves a field unchanged.
type UserPatch struct {
	Name    *string
	Email   *string
	Address *string
	Role    *Role
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User       User   `json:"user"`
	Token      string `json:"token"`
	RedirectTo string `json:"redirect_to"`
}
