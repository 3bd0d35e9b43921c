// Package model holds the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// Devices is a JSONB array of client-generated device identifiers; membership
// queries go through datatypes.JSONArrayQuery.
type UserModel struct {
	ID           uuid.UUID                     `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string                        `gorm:"type:varchar(100);not null"`
	Phone        string                        `gorm:"type:varchar(20);not null;index"`
	PinHash      string                        `gorm:"type:varchar(255);not null"`
	Devices      datatypes.JSONSlice[string]   `gorm:"type:jsonb"`
	Role         string                        `gorm:"type:varchar(20);not null;default:'USER'"`
	Status       string                        `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	ProfileImage string                        `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLogin    *time.Time
	DeletedAt    *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
