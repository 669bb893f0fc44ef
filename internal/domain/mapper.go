package domain

import (
	"task-manager/internal/repository"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) repository.Task {
	return repository.Task{
		ID:         domainTask.ID,
		Name:       domainTask.Name,
		Details:    domainTask.Details,
		CreateDate: domainTask.CreateDate,
		UpdateDate: domainTask.UpdateDate,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask repository.Task) Task {
	return Task{
		ID:         dbTask.ID,
		Name:       dbTask.Name,
		Details:    dbTask.Details,
		CreateDate: dbTask.CreateDate,
		UpdateDate: dbTask.UpdateDate,
	}
}

// ToDatabaseSlice converts a slice of domain Tasks to database Tasks.
func (m *TaskMapper) ToDatabaseSlice(domainTasks []Task) []repository.Task {
	dbTasks := make([]repository.Task, len(domainTasks))
	for i, task := range domainTasks {
		dbTasks[i] = m.ToDatabase(task)
	}
	return dbTasks
}

// FromDatabaseSlice converts database Task pointers to domain Tasks, skipping nils.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*repository.Task) []Task {
	domainTasks := make([]Task, 0, len(dbTasks))
	for _, task := range dbTasks {
		if task == nil {
			continue
		}
		domainTasks = append(domainTasks, m.FromDatabase(*task))
	}
	return domainTasks
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task *TaskMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
	}
}
