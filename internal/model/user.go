package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Enforcement happens in the auth
// middleware; there is no dynamic permission table.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleUser     Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleUser:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

type User struct {
	gorm.Model
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Phone     string    `gorm:"column:phone"`
	Email     string    `gorm:"column:email;unique;not null"`
	Password  string    `gorm:"column:password;not null"`
	Role      Role      `gorm:"column:role;type:varchar(16);default:user;not null"`
	LastLogin time.Time `gorm:"column:last_login"`

	// TokenVersion is embedded in every issued JWT; bumping it invalidates
	// all outstanding tokens for the user in one atomic write.
	TokenVersion int `gorm:"column:token_version;default:1;not null"`
}
