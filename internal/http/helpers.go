package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marhild/booksmanager/internal/services"
)

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 404 page and returns 0, false on failure.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		renderErrorPage(c, http.StatusNotFound, "The requested page does not exist.")
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an optional integer query parameter. Returns nil when the
// parameter is absent or malformed.
func queryInt(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}

// render issues an HTML response, injecting the CSRF form field every
// template can rely on.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CSRFField"] = CSRFTokenField(c)
	c.HTML(status, name, data)
}

// renderErrorPage renders the generic error template.
func renderErrorPage(c *gin.Context, status int, message string) {
	render(c, status, "error", gin.H{
		"Status": status,
		"Text":   message,
	})
}

// renderServiceError maps a service error onto an error page. NotFound
// becomes a 404; anything unexpected is logged and hidden behind a generic
// 500 page.
func renderServiceError(c *gin.Context, err error, context string) {
	if errors.Is(err, services.ErrNotFound) {
		renderErrorPage(c, http.StatusNotFound, "The requested entry could not be found.")
		return
	}
	log.Printf("Internal error (%s): %v", context, err)
	renderErrorPage(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
