package domain

import "time"

// Exam is a timed assessment attached to a course.
type Exam struct {
	ID              string
	CourseID        string
	Title           string
	DurationMinutes int
	TotalMarks      int
	CreatedAt       time.Time
}
