package models

import (
	"testing"
)

func TestSessionValidation(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		wantErr bool
	}{
		{
			name: "valid session",
			session: Session{
				ID:     "sess-1",
				Date:   "2025-01-05",
				Time:   "14:30",
				Status: "planned",
			},
			wantErr: false,
		},
		{
			name:    "missing id",
			session: Session{Date: "2025-01-05"},
			wantErr: true,
		},
		{
			name:    "missing date",
			session: Session{ID: "sess-1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusDefinitionValidation(t *testing.T) {
	tests := []struct {
		name    string
		def     StatusDefinition
		wantErr bool
	}{
		{"valid", StatusDefinition{ID: "st-1", Name: "Booked", Lifecycle: LifecycleActive}, false},
		{"missing name", StatusDefinition{ID: "st-1", Lifecycle: LifecycleActive}, true},
		{"unknown lifecycle", StatusDefinition{ID: "st-1", Name: "Odd", Lifecycle: "paused"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	s := Session{Status: "planned"}
	if got := s.StatusLabel(); got != "planned" {
		t.Errorf("StatusLabel() = %q, want planned", got)
	}

	s.StatusDefinition = &StatusDefinition{ID: "st-1", Name: "Booked", Lifecycle: LifecycleActive}
	if got := s.StatusLabel(); got != "Booked" {
		t.Errorf("StatusLabel() = %q, want Booked", got)
	}
}
