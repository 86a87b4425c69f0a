// Package v1 serves the task list over HTTP.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tasker/internal/service"
)

type Handler interface {
	HandleRequestID(c *gin.Context)
	HandleAccessLog(c *gin.Context)
	HandleRecovery(c *gin.Context, recovered any)

	HandleGetTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleCompleteTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  service.Service
}

func New(logger zerolog.Logger, taskService service.Service) Handler {
	return &handlerImpl{
		logger: logger,
		tasks:  taskService,
	}
}
