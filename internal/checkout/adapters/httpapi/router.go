// Package httpapi exposes the checkout service over HTTP with Gin.
package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/shopflow/checkout/internal/checkout/ports"
)

// NewRouter builds a Gin engine with the checkout routes mounted.
func NewRouter(service ports.Service, orchestrator ports.WorkflowOrchestrator) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), service, orchestrator)
}

// NewRouterWithGinEngine mounts the checkout routes on an existing engine,
// letting the caller attach middleware first.
func NewRouterWithGinEngine(router *gin.Engine, service ports.Service, orchestrator ports.WorkflowOrchestrator) *gin.Engine {
	api := NewCheckoutAPI(service, orchestrator)
	v1 := router.Group("/v1")
	{
		v1.POST("/cart/items", api.AddCartItem)
		v1.GET("/cart", api.GetCart)
		v1.POST("/checkout", api.Checkout)
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return router
}
