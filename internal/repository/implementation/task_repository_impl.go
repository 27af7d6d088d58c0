package implementation

import (
	"context"
	"errors"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/mapper"
	"ai-tutor-be/internal/model"
	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewTaskRepository(db *gorm.DB) contract.TaskRepository {
	return &TaskRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *TaskRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create takes the next id inside a transaction so two writers cannot
// receive the same number.
func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last model.Task
		query := r.applySpecifications(tx.Clauses(clause.Locking{Strength: "UPDATE"}), specification.OrderBy{Field: "id", Desc: true})
		next := 1
		err := query.First(&last).Error
		switch {
		case err == nil:
			next = last.Id + 1
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		m := r.mapper.ToModel(task)
		m.Id = next
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		*task = *r.mapper.ToEntity(m)
		return nil
	})
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entity.Task) error {
	m := r.mapper.ToModel(task)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*task = *r.mapper.ToEntity(m)
	return nil
}

func (r *TaskRepositoryImpl) FindByID(ctx context.Context, id int) (*entity.Task, error) {
	var m model.Task
	query := r.applySpecifications(r.db.WithContext(ctx), specification.Filter("id", id))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TaskRepositoryImpl) FindAll(ctx context.Context) ([]*entity.Task, error) {
	var models []*model.Task
	query := r.applySpecifications(r.db.WithContext(ctx), specification.OrderBy{Field: "id"})
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TaskRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Task{}).Error
}
