package models

import (
	"errors"
	"time"
)

// Lifecycle is the coarse phase of a session used for grouping and ordering
type Lifecycle string

const (
	LifecycleActive    Lifecycle = "active"
	LifecycleCompleted Lifecycle = "completed"
	LifecycleCancelled Lifecycle = "cancelled"
)

// Lifecycles lists the known buckets in display order
var Lifecycles = []Lifecycle{LifecycleActive, LifecycleCompleted, LifecycleCancelled}

// Valid reports whether l is one of the three known buckets
func (l Lifecycle) Valid() bool {
	switch l {
	case LifecycleActive, LifecycleCompleted, LifecycleCancelled:
		return true
	}
	return false
}

// StatusDefinition is a structured status with an authoritative lifecycle
type StatusDefinition struct {
	ID        string
	Name      string
	Lifecycle Lifecycle
	SortOrder int
}

// Validate checks if the status definition has required fields
func (d *StatusDefinition) Validate() error {
	if d.ID == "" {
		return errors.New("status id is required")
	}
	if d.Name == "" {
		return errors.New("status name is required")
	}
	if !d.Lifecycle.Valid() {
		return errors.New("status lifecycle must be active, completed or cancelled")
	}
	return nil
}

// Session represents one scheduled photography session
type Session struct {
	ID               string
	Date             string // YYYY-MM-DD
	Time             string // HH:MM[:SS], empty means midnight
	Status           string // Legacy free-text status label
	StatusDefinition *StatusDefinition
	LeadID           string
	ProjectID        string
	Location         string
	Notes            string

	// Joined for display
	LeadName    string
	ProjectName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the session has required fields
func (s *Session) Validate() error {
	if s.ID == "" {
		return errors.New("session id is required")
	}
	if s.Date == "" {
		return errors.New("session date is required")
	}
	return nil
}

// StatusLabel returns the name shown for the session's status
func (s *Session) StatusLabel() string {
	if s.StatusDefinition != nil && s.StatusDefinition.Name != "" {
		return s.StatusDefinition.Name
	}
	return s.Status
}
