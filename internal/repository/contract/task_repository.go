package contract

import (
	"context"

	"ai-tutor-be/internal/entity"
)

// TaskRepository stores the todo list. Ids are assigned by Create in
// sequence starting at 1; DeleteAll restarts the sequence.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	Update(ctx context.Context, task *entity.Task) error
	FindByID(ctx context.Context, id int) (*entity.Task, error)
	FindAll(ctx context.Context) ([]*entity.Task, error)
	DeleteAll(ctx context.Context) error
}
