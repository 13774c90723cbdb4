package domain

// Task is a single to-do record.
//
// DueDate is whatever JSON value the client supplied at creation. Only the
// "YYYY-MM-DD" string form takes part in due-today matching.
type Task struct {
	ID        string `json:"id" bson:"id"`
	Text      string `json:"text" bson:"text"`
	Completed bool   `json:"completed" bson:"completed"`
	DueDate   any    `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Index     int64  `json:"index" bson:"index"`
}

// DueDateLayout is the canonical on-disk form of a due date.
const DueDateLayout = "2006-01-02"
