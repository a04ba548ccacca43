package dashboard

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed dashboard.html
var page []byte

// RegisterDashboardPage serves the staff dashboard at /. The page itself holds
// no data; it reads and updates submissions through the JSON API.
func RegisterDashboardPage(router gin.IRouter, guards ...gin.HandlerFunc) {
	handlers := make([]gin.HandlerFunc, 0, len(guards)+1)
	handlers = append(handlers, guards...)
	handlers = append(handlers, func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
	router.GET("/", handlers...)
}
