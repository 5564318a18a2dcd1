package domain

import "time"

// Question is a multiple-choice item belonging to a course.
type Question struct {
	ID            string
	CourseID      string
	Text          string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
	Difficulty    string
	Topic         string
	CreatedAt     time.Time
}
