package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RepairStatus string

const (
	RepairPending    RepairStatus = "pending"
	RepairInProgress RepairStatus = "in_progress"
	RepairDone       RepairStatus = "done"
	RepairRejected   RepairStatus = "rejected"
)

func (s RepairStatus) Valid() bool {
	switch s {
	case RepairPending, RepairInProgress, RepairDone, RepairRejected:
		return true
	}
	return false
}

// RepairRequest is a support/repair ticket opened by a user. Details holds
// the free-form device description the intake form submits.
type RepairRequest struct {
	gorm.Model
	UserID  uint           `gorm:"column:user_id;index;not null"`
	User    User           `gorm:"foreignKey:UserID"`
	Subject string         `gorm:"column:subject;not null"`
	Status  RepairStatus   `gorm:"column:status;type:varchar(16);default:pending;not null"`
	Details datatypes.JSON `gorm:"column:details"`
}
