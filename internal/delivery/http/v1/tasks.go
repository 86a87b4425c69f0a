package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tasker/internal/taskstore"
)

type createTaskRequest struct {
	Description *string `json:"description"`
	Done        bool    `json:"done"`
}

type deleteTaskResponse struct {
	Removed taskstore.Task `json:"removed"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c.Request.Context())
	if err != nil {
		h.abortWithServiceError(c, err, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []taskstore.Task{}
	}

	h.requestLogger(c).Debug().
		Int("count", len(tasks)).
		Msg("listed tasks")
	c.JSON(http.StatusOK, tasks)
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.requestLogger(c).Debug().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}
	if req.Description == nil || strings.TrimSpace(*req.Description) == "" {
		abort(c, newBadRequestError(errDescriptionMissing.Error()))
		return
	}

	task, err := h.tasks.AddTask(c.Request.Context(), taskstore.Task{
		Description: *req.Description,
		Done:        req.Done,
	})
	if err != nil {
		h.abortWithServiceError(c, err, "failed to add task")
		return
	}

	h.requestLogger(c).Info().Msg("created task")
	c.JSON(http.StatusCreated, task)
}

func (h *handlerImpl) HandleCompleteTask(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	task, err := h.tasks.CompleteTask(c.Request.Context(), index)
	if err != nil {
		h.abortWithServiceError(c, err, "failed to mark task done")
		return
	}

	h.requestLogger(c).Info().
		Int("index", index).
		Msg("marked task done")
	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	removed, err := h.tasks.DeleteTask(c.Request.Context(), index)
	if err != nil {
		h.abortWithServiceError(c, err, "failed to delete task")
		return
	}

	h.requestLogger(c).Info().
		Int("index", index).
		Msg("deleted task")
	c.JSON(http.StatusOK, deleteTaskResponse{Removed: removed})
}

// parseIndex reads the 0-based :index path parameter.
// Negative values pass through and are reported as not found.
func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abort(c, newBadRequestError(errInvalidTaskIndex.Error()))
		return 0, false
	}
	return index, true
}
