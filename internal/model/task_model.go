package model

import (
	"time"
)

type Task struct {
	Id        int        `gorm:"primaryKey;autoIncrement:false"`
	Text      string     `gorm:"type:text;not null"`
	Done      bool       `gorm:"not null;default:false"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DoneAt    *time.Time `gorm:"index"`
}

func (Task) TableName() string {
	return "todo_tasks"
}
