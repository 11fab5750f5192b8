package models

import (
	"errors"
	"time"
)

// Lead is a prospective or existing client
type Lead struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Status    string
	CreatedAt time.Time
}

// Validate checks if the lead has required fields
func (l *Lead) Validate() error {
	if l.ID == "" {
		return errors.New("lead id is required")
	}
	if l.Name == "" {
		return errors.New("lead name is required")
	}
	return nil
}

// Project groups sessions booked for one job
type Project struct {
	ID        string
	Name      string
	LeadID    string
	Status    string
	CreatedAt time.Time
}

// Validate checks if the project has required fields
func (p *Project) Validate() error {
	if p.ID == "" {
		return errors.New("project id is required")
	}
	if p.Name == "" {
		return errors.New("project name is required")
	}
	return nil
}

// MessageTemplate is a reusable client message with mustache placeholders
type MessageTemplate struct {
	ID      string
	Name    string
	Channel string // email, sms, whatsapp
	Subject string
	Body    string
}

// Validate checks if the template has required fields
func (t *MessageTemplate) Validate() error {
	if t.Name == "" {
		return errors.New("template name is required")
	}
	if t.Body == "" {
		return errors.New("template body is required")
	}
	return nil
}
