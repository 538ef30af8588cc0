// Package router wires the HTTP routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler interface {
	Generate(c *gin.Context)
	CreateForm(c *gin.Context)
	PreviewReminders(c *gin.Context)
	ConfirmReminders(c *gin.Context)
}

func InitRouter(mode string, h Handler, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(mode)
	router := gin.New()
	router.Use(mw...)

	api := router.Group("/api")
	{
		api.POST("/generate", h.Generate)
		api.POST("/forms/create", h.CreateForm)
		api.POST("/reminders/preview", h.PreviewReminders)
		api.POST("/reminders/create", h.ConfirmReminders)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
