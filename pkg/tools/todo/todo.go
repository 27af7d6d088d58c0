package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/contract"
)

var (
	ErrInvalidID      = errors.New("invalid task id")
	ErrNotFound       = errors.New("task not found")
	ErrEmptyText      = errors.New("empty task text")
	ErrUnknownCommand = errors.New("unknown todo command (use add, done, list or clear)")
)

// View is what a command leaves behind: the task it touched and the full
// list after the change.
type View struct {
	Action Action
	Task   *entity.Task
	Tasks  []*entity.Task
}

// Markdown renders the view for the chat.
func (v View) Markdown() string {
	var b strings.Builder
	switch v.Action {
	case ActionAdd:
		fmt.Fprintf(&b, "Ajouté : #%d %s\n\n", v.Task.Id, v.Task.Text)
	case ActionDone:
		fmt.Fprintf(&b, "Terminé : #%d %s\n\n", v.Task.Id, v.Task.Text)
	case ActionClear:
		b.WriteString("Liste vidée.\n\n")
	}

	if len(v.Tasks) == 0 {
		b.WriteString("La liste est vide.")
		return b.String()
	}
	for i, t := range v.Tasks {
		box := " "
		if t.Done {
			box = "x"
		}
		fmt.Fprintf(&b, "- [%s] #%d %s", box, t.Id, t.Text)
		if i < len(v.Tasks)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

type Service struct {
	repo   contract.TaskRepository
	logger logger.ILogger
	now    func() time.Time
}

func NewService(repo contract.TaskRepository, log logger.ILogger) *Service {
	return &Service{repo: repo, logger: log, now: time.Now}
}

// Apply parses text into a Command and executes it.
func (s *Service) Apply(ctx context.Context, text string) (View, error) {
	cmd := ParseCommand(text)
	s.logger.Debug("TODO", "Command parsed", map[string]interface{}{
		"input":   text,
		"command": cmd.String(),
	})

	switch cmd.Action {
	case ActionAdd:
		return s.add(ctx, cmd.Text)
	case ActionDone:
		if cmd.RawID != "" || cmd.ID <= 0 {
			return View{}, fmt.Errorf("%w: %q", ErrInvalidID, cmd.RawID)
		}
		return s.done(ctx, cmd.ID)
	case ActionList:
		return s.list(ctx, ActionList, nil)
	case ActionClear:
		if err := s.repo.DeleteAll(ctx); err != nil {
			return View{}, fmt.Errorf("clear tasks: %w", err)
		}
		s.logger.Info("TODO", "List cleared", nil)
		return s.list(ctx, ActionClear, nil)
	default:
		return View{}, ErrUnknownCommand
	}
}

func (s *Service) add(ctx context.Context, text string) (View, error) {
	if text == "" {
		return View{}, ErrEmptyText
	}
	task := &entity.Task{Text: text, CreatedAt: s.now()}
	if err := s.repo.Create(ctx, task); err != nil {
		return View{}, fmt.Errorf("create task: %w", err)
	}
	s.logger.Info("TODO", "Task added", map[string]interface{}{"id": task.Id})
	return s.list(ctx, ActionAdd, task)
}

func (s *Service) done(ctx context.Context, id int) (View, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return View{}, fmt.Errorf("find task %d: %w", id, err)
	}
	if task == nil {
		return View{}, fmt.Errorf("%w: #%d", ErrNotFound, id)
	}

	if !task.Done {
		at := s.now()
		task.Done = true
		task.DoneAt = &at
		if err := s.repo.Update(ctx, task); err != nil {
			return View{}, fmt.Errorf("update task %d: %w", id, err)
		}
	}
	s.logger.Info("TODO", "Task completed", map[string]interface{}{"id": id})
	return s.list(ctx, ActionDone, task)
}

func (s *Service) list(ctx context.Context, action Action, task *entity.Task) (View, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return View{}, fmt.Errorf("list tasks: %w", err)
	}
	return View{Action: action, Task: task, Tasks: tasks}, nil
}
