package domain

import "time"

// Course groups exams and questions under a single subject.
type Course struct {
	ID          string
	Title       string
	Description string
	Instructor  string
	CreatedAt   time.Time
}
