package models

import "time"

// Task identifies one piece of coursework belonging to a course. A task is
// treated as an immutable snapshot for the duration of one planning run.
type Task struct {
	ID          string    `db:"id" json:"id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	Deadline    time.Time `db:"deadline" json:"deadline"`
	Weight      float64   `db:"weight" json:"weight"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// TaskWithCourse joins a task with its course title for planning and display.
type TaskWithCourse struct {
	Task
	CourseTitle string `db:"course_title" json:"course_title"`
}
