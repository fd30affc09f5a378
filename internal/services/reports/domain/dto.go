// Package domain holds DTOs for report http and service contracts
package domain

import (
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/core/lifecycle"
)

// Dates are ISO8601 day precision; an empty as_of means no bound

// VolumeInput selects the grouping for complaint counts
type VolumeInput struct {
	Dimension string `json:"dimension" validate:"required,oneof=resident category ward month" example:"category"`
	TopN      int    `json:"top_n,omitempty" validate:"omitempty,min=1,max=100" example:"5"`
}

// TurnaroundInput selects the grouping for mean turnaround days
type TurnaroundInput struct {
	Dimension string `json:"dimension" validate:"required,oneof=resident category ward month" example:"ward"`
	TopN      int    `json:"top_n,omitempty" validate:"omitempty,min=1,max=100" example:"5"`
}

// DwellInput controls open interval handling for dwell summaries
type DwellInput struct {
	IncludeOpen bool   `json:"include_open,omitempty" example:"true"`
	AsOf        string `json:"as_of,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-08-01"`
}

// MixInput bounds the status mix at a report date
type MixInput struct {
	AsOf string `json:"as_of,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-08-01"`
}

// PerformanceInput bounds a per group status mix at a report date
type PerformanceInput struct {
	AsOf string `json:"as_of,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-08-01"`
}

// OverdueInput selects the age threshold for the overdue report
type OverdueInput struct {
	ThresholdDays int    `json:"threshold_days,omitempty" validate:"omitempty,min=1,max=3650" example:"30"`
	AsOf          string `json:"as_of,omitempty" validate:"omitempty,datetime=2006-01-02" example:"2025-08-01"`
}

// TrendsInput controls the monthly trends source
type TrendsInput struct {
	// Live forces recomputation from postgres even when the rollup exists
	Live bool `json:"live,omitempty" example:"false"`
}

// Overview is the full derived record set with its warnings
type Overview struct {
	Total    int                 `json:"total" example:"42"`
	Records  []lifecycle.Record  `json:"records"`
	Warnings []lifecycle.Warning `json:"warnings,omitempty"`
}

// Volume is a ranked count grouping with share of total
type Volume struct {
	Dimension string               `json:"dimension" example:"category"`
	Rows      []lifecycle.GroupRow `json:"rows"`
	Warnings  []lifecycle.Warning  `json:"warnings,omitempty"`
}

// Turnaround is a ranked mean turnaround grouping
type Turnaround struct {
	Dimension string               `json:"dimension" example:"ward"`
	Rows      []lifecycle.GroupRow `json:"rows"`
	Warnings  []lifecycle.Warning  `json:"warnings,omitempty"`
}

// Dwell is the per status dwell summary
type Dwell struct {
	IncludeOpen bool                  `json:"include_open"`
	Stats       []lifecycle.DwellStat `json:"stats"`
	Warnings    []lifecycle.Warning   `json:"warnings,omitempty"`
}

// MixReport is the overall status mix
type MixReport struct {
	Mix      lifecycle.Mix       `json:"mix"`
	Warnings []lifecycle.Warning `json:"warnings,omitempty"`
}

// Performance is a per group status mix ordered busiest first
type Performance struct {
	Dimension string              `json:"dimension" example:"ward"`
	Rows      []lifecycle.Mix     `json:"rows"`
	Warnings  []lifecycle.Warning `json:"warnings,omitempty"`
}

// Overdue lists active complaints older than the threshold, oldest first
type Overdue struct {
	ThresholdDays int                 `json:"threshold_days" example:"30"`
	Rows          []lifecycle.OpenAge `json:"rows"`
	Warnings      []lifecycle.Warning `json:"warnings,omitempty"`
}

// TrendRow is one month of the rollup
type TrendRow struct {
	Month              string  `json:"month" example:"2025-03"`
	Total              int64   `json:"total" example:"12"`
	Submitted          int64   `json:"submitted" example:"2"`
	InProgress         int64   `json:"in_progress" example:"3"`
	Resolved           int64   `json:"resolved" example:"7"`
	ResolutionRate     float64 `json:"resolution_rate" example:"58.33"`
	MeanTurnaroundDays float64 `json:"mean_turnaround_days" example:"4.5"`
}

// Trends is the monthly series and where it came from
type Trends struct {
	Source string     `json:"source" example:"rollup"` // rollup or live
	Rows   []TrendRow `json:"rows"`
}
