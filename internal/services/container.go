package services

import (
	"task-manager/internal/repository"
)

// NewServiceContainer wires every service over one repository and clock
func NewServiceContainer(repo repository.Repository, timeService TimeService) *ServiceContainer {
	taskService := NewTaskService(repo, timeService)
	return &ServiceContainer{
		TimeService:      timeService,
		TaskService:      taskService,
		SearchService:    NewSearchService(repo),
		ReportingService: NewReportingService(taskService),
	}
}
