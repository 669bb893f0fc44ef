package services

import (
	"context"

	"task-manager/internal/errors"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	taskService TaskService
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(taskService TaskService) ReportingService {
	return &reportingServiceImpl{taskService: taskService}
}

// GetSummary counts tasks by whether they were ever updated and whether
// their create date still needs a backfill
func (r *reportingServiceImpl) GetSummary(ctx context.Context) (*TaskSummary, error) {
	tasks, err := r.taskService.ListTasks(ctx)
	if err != nil {
		return nil, errors.FromStoreError("summarize tasks", err)
	}

	summary := &TaskSummary{Total: len(tasks)}
	for _, task := range tasks {
		if task.HasBeenUpdated() {
			summary.Updated++
		} else {
			summary.NeverUpdated++
		}
		if !task.HasCreateDate() {
			summary.MissingCreateDate++
		}
	}
	return summary, nil
}
