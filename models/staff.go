package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StaffStatus enum
type StaffStatus string

const (
	Available StaffStatus = "Available"
	OnDuty    StaffStatus = "On-Duty"
	OffDuty   StaffStatus = "Off-Duty"
)

// Staff represents a municipal staff member who can be assigned to issues
type Staff struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Contact   string             `bson:"contact" json:"contact"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Status    StaffStatus        `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
