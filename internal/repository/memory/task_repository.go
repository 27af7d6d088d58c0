package memory

import (
	"context"
	"sync"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/repository/contract"
)

type TaskRepository struct {
	mu    sync.Mutex
	tasks []entity.Task
}

func NewTaskRepository() contract.TaskRepository {
	return &TaskRepository{}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 1
	if n := len(r.tasks); n > 0 {
		next = r.tasks[n-1].Id + 1
	}
	task.Id = next
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, task *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tasks {
		if r.tasks[i].Id == task.Id {
			r.tasks[i] = *task
			return nil
		}
	}
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.tasks {
		if t.Id == id {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Task, len(r.tasks))
	for i := range r.tasks {
		t := r.tasks[i]
		out[i] = &t
	}
	return out, nil
}

func (r *TaskRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = nil
	return nil
}
