package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(c, errors.NewInvalidInputError("id", raw, "must be an integer"))
		return 0, false
	}
	return id, true
}

// bindInput decodes the JSON body into a TaskInput.
func bindInput(c *gin.Context) (domain.TaskInput, bool) {
	var input domain.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, errors.NewInvalidInputError("body", nil, "malformed JSON: "+err.Error()))
		return input, false
	}
	return input, true
}

// listTasks returns every task
//
//	@Summary	List tasks
//	@Tags		tasks
//	@Produce	json
//	@Success	200	{array}		domain.Task
//	@Failure	500	{object}	api.ErrorResponse
//	@Router		/tasks [get]
func (a *API) listTasks(c *gin.Context) {
	tasks, err := a.services.TaskService.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// getTask returns one task
//
//	@Summary	Get a task
//	@Tags		tasks
//	@Produce	json
//	@Param		id	path		int	true	"Task ID"
//	@Success	200	{object}	domain.Task
//	@Failure	400	{object}	api.ErrorResponse
//	@Failure	404	{object}	api.ErrorResponse
//	@Router		/tasks/{id} [get]
func (a *API) getTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	task, err := a.services.TaskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// createTask stores a new task
//
//	@Summary		Create a task
//	@Description	Blank details are replaced by "Non input details...". updateDate starts at 0000/00/00 00:00:00.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			task	body		domain.TaskInput	true	"Task"
//	@Success		201		{object}	domain.Task
//	@Failure		400		{object}	api.ErrorResponse
//	@Router			/tasks [post]
func (a *API) createTask(c *gin.Context) {
	input, ok := bindInput(c)
	if !ok {
		return
	}
	task, err := a.services.TaskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// updateTask replaces name and details
//
//	@Summary	Update a task
//	@Tags		tasks
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Task ID"
//	@Param		task	body		domain.TaskInput	true	"Task"
//	@Success	200		{object}	domain.Task
//	@Failure	400		{object}	api.ErrorResponse
//	@Failure	404		{object}	api.ErrorResponse
//	@Router		/tasks/{id} [put]
func (a *API) updateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := bindInput(c)
	if !ok {
		return
	}
	task, err := a.services.TaskService.UpdateTask(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// setCreateDate backfills a missing createDate
//
//	@Summary		Backfill createDate
//	@Description	Allowed only while createDate is unset. The value must match yyyy/MM/dd HH:mm:ss.
//	@Tags			tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Task ID"
//	@Param			task	body		domain.TaskInput	true	"Only createDate is read"
//	@Success		200		{object}	domain.Task
//	@Failure		400		{object}	api.ErrorResponse
//	@Failure		404		{object}	api.ErrorResponse
//	@Router			/tasks/{id}/create-date [put]
func (a *API) setCreateDate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	input, ok := bindInput(c)
	if !ok {
		return
	}
	task, err := a.services.TaskService.SetCreateDate(c.Request.Context(), id, input.CreateDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// deleteTask removes one task
//
//	@Summary	Delete a task
//	@Tags		tasks
//	@Param		id	path	int	true	"Task ID"
//	@Success	204
//	@Failure	400	{object}	api.ErrorResponse
//	@Failure	404	{object}	api.ErrorResponse
//	@Router		/tasks/{id} [delete]
func (a *API) deleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := a.services.TaskService.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// searchTasks matches a keyword against name or details, or a date
// against createDate or updateDate when only date is given
//
//	@Summary		Search tasks
//	@Description	Case-sensitive substring match on name or details. With date and no keyword, matches createDate or updateDate.
//	@Tags			search
//	@Produce		json
//	@Param			keyword	query		string	false	"Keyword"
//	@Param			date	query		string	false	"yyyy/MM/dd"	example(2024/03/15)
//	@Success		200		{array}		domain.Task
//	@Failure		400		{object}	api.ErrorResponse
//	@Failure		404		{object}	api.ErrorResponse
//	@Router			/tasks/search [get]
func (a *API) searchTasks(c *gin.Context) {
	opts := domain.ByKeyword(c.Query("keyword"))
	if date := c.Query("date"); date != "" && opts.Keyword == "" {
		opts = domain.ByDate(date)
	}

	tasks, err := a.services.SearchService.Search(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// searchByDate matches createDate or updateDate
//
//	@Summary	Search by date
//	@Tags		search
//	@Produce	json
//	@Param		date	query		string	true	"yyyy/MM/dd"	example(2024/03/15)
//	@Success	200		{array}		domain.Task
//	@Failure	400		{object}	api.ErrorResponse
//	@Failure	404		{object}	api.ErrorResponse
//	@Router		/tasks/search/date [get]
func (a *API) searchByDate(c *gin.Context) {
	tasks, err := a.services.SearchService.SearchByDate(c.Request.Context(), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// deleteByDate removes every task created on a date
//
//	@Summary	Delete by creation date
//	@Tags		search
//	@Produce	json
//	@Param		date	query		string	true	"yyyy/MM/dd"	example(2024/03/15)
//	@Success	200		{object}	api.DeletedResponse
//	@Failure	400		{object}	api.ErrorResponse
//	@Failure	404		{object}	api.ErrorResponse
//	@Router		/tasks/by-date [delete]
func (a *API) deleteByDate(c *gin.Context) {
	date := c.Query("date")
	deleted, err := a.services.SearchService.DeleteByCreateDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	a.metrics.ObserveDeleted(deleted)
	logging.FromContext(c.Request.Context()).Info("tasks deleted by date", "date", date, "deleted", deleted)
	c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}

// getSummary counts tasks by state
//
//	@Summary	Task summary
//	@Tags		tasks
//	@Produce	json
//	@Success	200	{object}	services.TaskSummary
//	@Failure	500	{object}	api.ErrorResponse
//	@Router		/tasks/summary [get]
func (a *API) getSummary(c *gin.Context) {
	summary, err := a.services.ReportingService.GetSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
