package deadlines

import "errors"

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrCourseRequired = errors.New("course is required")
	ErrInvalidSource  = errors.New("source must be one of Canvas, Gradescope, Piazza, Other")
	ErrDueRequired    = errors.New("due time is required")
)
