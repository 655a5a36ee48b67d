package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Task is a single to-do record. Completed only changes through Toggle.
type Task struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Completed bool      `json:"completed" db:"completed"`
	Date      string    `json:"date" db:"date"`
	Time      string    `json:"time" db:"time"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateTaskInput is the body accepted by POST /api/todos.
type CreateTaskInput struct {
	Text string `json:"text"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// Normalize trims the input and checks the date/time formats.
// Returned errors wrap ErrValidation.
func (in CreateTaskInput) Normalize() (CreateTaskInput, error) {
	out := CreateTaskInput{
		Text: strings.TrimSpace(in.Text),
		Date: strings.TrimSpace(in.Date),
		Time: strings.TrimSpace(in.Time),
	}
	if out.Text == "" {
		return out, fmt.Errorf("%w: text is required", ErrValidation)
	}
	if out.Date != "" {
		if _, err := time.Parse(DateLayout, out.Date); err != nil {
			return out, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
		}
	}
	if out.Time != "" {
		if _, err := time.Parse(TimeLayout, out.Time); err != nil {
			return out, fmt.Errorf("%w: time must be HH:MM", ErrValidation)
		}
	}
	return out, nil
}

// HasSchedule reports whether both date and time are set.
func (t Task) HasSchedule() bool {
	return t.Date != "" && t.Time != ""
}

// Due returns the instant the task is scheduled for, interpreted in loc.
// ok is false when date or time is missing or malformed.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	if !t.HasSchedule() {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	due, err := time.ParseInLocation(DateLayout+" "+TimeLayout, t.Date+" "+t.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}
