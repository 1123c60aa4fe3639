package handler

import (
	"errors"  // building simple error values
	"strconv" // parsing numeric path params

	"github.com/labstack/echo/v4" // Echo framework context
)

// getUserID reads the authenticated user id placed on the context by the
// JWT middleware. Returns an error when the request was not authenticated.
func getUserID(c echo.Context) (uint64, error) {
	// The middleware stores the id under "user_id" as uint64.
	v := c.Get("user_id")
	// A missing value means the route was reached without the middleware.
	id, ok := v.(uint64)
	if !ok || id == 0 {
		return 0, errors.New("missing user id in context")
	}
	return id, nil
}

// pathID parses the ":id" path parameter as an unsigned integer.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
