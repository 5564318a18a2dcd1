package dto

// CourseCreateRequest payload for course creation.
type CourseCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Instructor  string `json:"instructor"`
}

// ExamCreateRequest payload for exam creation.
type ExamCreateRequest struct {
	CourseID        string `json:"course_id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	TotalMarks      int    `json:"total_marks"`
}

// QuestionCreateRequest payload for question creation.
type QuestionCreateRequest struct {
	CourseID      string `json:"course_id"`
	Text          string `json:"text"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
	Difficulty    string `json:"difficulty"`
	Topic         string `json:"topic"`
}
