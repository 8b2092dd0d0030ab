package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bhai/internal/resources"
)

type ResourcesHandler struct{}

func (h *ResourcesHandler) List(c *gin.Context) {
	list := resources.Search(c.Query("q"), c.Query("category"))
	c.JSON(http.StatusOK, gin.H{
		"resources":  list,
		"categories": resources.Categories(),
	})
}

func (h *ResourcesHandler) Get(c *gin.Context) {
	r, ok := resources.ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "resource not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resource": r})
}
