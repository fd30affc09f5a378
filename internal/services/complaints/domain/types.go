// Package domain defines shared types for the complaints surface
package domain

import "time"

// ListInput filters complaint listings
// all filters are optional and combine with AND
type ListInput struct {
	Ward       *int64 `json:"ward,omitempty"        validate:"omitempty,min=0" example:"3"`
	CategoryID *int64 `json:"category_id,omitempty" validate:"omitempty,min=1" example:"4"`
	ResidentID *int64 `json:"resident_id,omitempty" validate:"omitempty,min=1" example:"101"`
	Status     string `json:"status,omitempty"      validate:"omitempty,oneof=Submitted 'In Progress' Resolved" example:"In Progress"`
	ActiveOnly bool   `json:"active_only,omitempty" example:"true"`
	AsOf       string `json:"as_of,omitempty"       validate:"omitempty,datetime=2006-01-02" example:"2025-08-01"`
	Limit      int    `json:"limit,omitempty"       validate:"omitempty,min=1,max=500" example:"100"`
}

// ListRow is one complaint in a listing
type ListRow struct {
	ComplaintID int64     `json:"complaint_id" example:"5001"`
	Title       string    `json:"title"        example:"Pothole on Main St"`
	Category    string    `json:"category"     example:"Roads"`
	CategoryID  int64     `json:"category_id"  example:"1"`
	Ward        int64     `json:"ward"         example:"3"`
	ResidentID  int64     `json:"resident_id"  example:"101"`
	Resident    string    `json:"resident"     example:"Thandi Mokoena"`
	Status      string    `json:"status"       example:"In Progress"`
	SubmittedAt time.Time `json:"submitted_at" example:"2025-07-12T08:30:00Z"`
}

// Detail is one complaint with its derived lifecycle fields
type Detail struct {
	ComplaintID    int64     `json:"complaint_id" example:"5001"`
	Title          string    `json:"title"        example:"Pothole on Main St"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category"     example:"Roads"`
	CategoryID     int64     `json:"category_id"  example:"1"`
	Ward           int64     `json:"ward"         example:"3"`
	ResidentID     int64     `json:"resident_id"  example:"101"`
	Resident       string    `json:"resident"     example:"Thandi Mokoena"`
	Status         string    `json:"status,omitempty" example:"Resolved"`
	SubmittedAt    time.Time `json:"submitted_at" example:"2025-07-12T08:30:00Z"`
	Resolved       bool      `json:"resolved"     example:"true"`
	ResolvedAt     time.Time `json:"resolved_at,omitzero"`
	TurnaroundDays int       `json:"turnaround_days,omitempty" example:"5"`
}

// TimelineEvent is one status change on a complaint timeline
type TimelineEvent struct {
	EventID    int64     `json:"event_id"    example:"9001"`
	Status     string    `json:"status"      example:"In Progress"`
	OccurredAt time.Time `json:"occurred_at" example:"2025-07-13T09:00:00Z"`
}

// Timeline is a complaint with its full ordered status history
type Timeline struct {
	ComplaintID int64           `json:"complaint_id" example:"5001"`
	Title       string          `json:"title"        example:"Pothole on Main St"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"     example:"Roads"`
	Resident    string          `json:"resident"     example:"Thandi Mokoena"`
	SubmittedAt time.Time       `json:"submitted_at" example:"2025-07-12T08:30:00Z"`
	Events      []TimelineEvent `json:"events"`
}
