package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	RoadDamage       IssueCategory = "Road Damage"
	WaterLeakage     IssueCategory = "Water Leakage"
	GarbageOverflow  IssueCategory = "Garbage Overflow"
	StreetlightIssue IssueCategory = "Streetlight Issue"
	OtherIssue       IssueCategory = "Other"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "Pending"
	InProgress IssueStatus = "In-Progress"
	Working    IssueStatus = "Working"
	Resolved   IssueStatus = "Resolved"
	Closed     IssueStatus = "Closed"
)

// IssuePriority enum
type IssuePriority string

const (
	NormalPriority IssuePriority = "Normal"
	HighPriority   IssuePriority = "High"
)

// Fixed display orders used by the list endpoint's page sort.
var (
	PriorityOrder = []string{"High", "Normal"}
	StatusOrder   = []string{"Pending", "In-Progress", "Working", "Resolved", "Closed"}
	CategoryOrder = []string{"Road Damage", "Water Leakage", "Garbage Overflow", "Streetlight Issue", "Other"}
)

// ValidCategory reports whether s is one of the issue categories.
func ValidCategory(s string) bool {
	switch IssueCategory(s) {
	case RoadDamage, WaterLeakage, GarbageOverflow, StreetlightIssue, OtherIssue:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the issue statuses.
func ValidStatus(s string) bool {
	switch IssueStatus(s) {
	case Pending, InProgress, Working, Resolved, Closed:
		return true
	}
	return false
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title              string             `bson:"title" json:"title"`
	Description        string             `bson:"description" json:"description"`
	Category           IssueCategory      `bson:"category" json:"category"`
	Location           string             `bson:"location" json:"location"`
	Date               string             `bson:"date" json:"date"`
	ReporterEmail      string             `bson:"reporterEmail" json:"reporterEmail"`
	Image              string             `bson:"image,omitempty" json:"image,omitempty"`
	Status             IssueStatus        `bson:"status" json:"status"`
	Priority           IssuePriority      `bson:"priority" json:"priority"`
	VoteCount          int                `bson:"voteCount" json:"voteCount"`
	UpvotedBy          []string           `bson:"upvotedBy" json:"upvotedBy"`
	AssignedStaffID    string             `bson:"assignedStaffId,omitempty" json:"assignedStaffId,omitempty"`
	AssignedStaffEmail string             `bson:"assignedStaffEmail,omitempty" json:"assignedStaffEmail,omitempty"`
	AssignedStaffName  string             `bson:"assignedStaffName,omitempty" json:"assignedStaffName,omitempty"`
	AssignedAt         *time.Time         `bson:"assignedAt,omitempty" json:"assignedAt,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// HasUpvoted reports whether email already appears in the issue's upvotedBy set.
func (i *Issue) HasUpvoted(email string) bool {
	for _, e := range i.UpvotedBy {
		if e == email {
			return true
		}
	}
	return false
}
