// Package orderserver wires the HTTP transport for the orderflow API.
package orderserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiHandleFunctions groups the handler bundles mounted on the router.
type ApiHandleFunctions struct {
	OrderAPI OrderAPI
}

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a gin engine with all API routes attached.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	router := gin.Default()
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandler
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "PlaceOrder",
			Method:      http.MethodPost,
			Pattern:     "/orders",
			HandlerFunc: handleFunctions.OrderAPI.PlaceOrder,
		},
		{
			Name:        "GetOrderById",
			Method:      http.MethodGet,
			Pattern:     "/orders/:orderId",
			HandlerFunc: handleFunctions.OrderAPI.GetOrderById,
		},
		{
			Name:        "ListOrders",
			Method:      http.MethodGet,
			Pattern:     "/orders",
			HandlerFunc: handleFunctions.OrderAPI.ListOrders,
		},
	}
}

func defaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "not implemented"})
}
