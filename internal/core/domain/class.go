package domain

import "time"

// Class is a scheduled weekly class owned by a teacher.
type Class struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	DayOfWeek   int       `json:"day_of_week"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	TeacherID   string    `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OwnerID is the id the authorization guard checks against.
func (c *Class) OwnerID() string {
	return c.TeacherID
}

// ClassUpdate is a partial update. Nil fields are left unchanged.
type ClassUpdate struct {
	Name        *string
	Description *string
	DayOfWeek   *int
	StartTime   *time.Time
	EndTime     *time.Time
}

// Apply writes the non-nil fields of u onto c.
func (u ClassUpdate) Apply(c *Class) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.DayOfWeek != nil {
		c.DayOfWeek = *u.DayOfWeek
	}
	if u.StartTime != nil {
		c.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		c.EndTime = *u.EndTime
	}
}
