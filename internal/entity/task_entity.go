package entity

import "time"

type Task struct {
	Id        int
	Text      string
	Done      bool
	CreatedAt time.Time
	DoneAt    *time.Time
}
