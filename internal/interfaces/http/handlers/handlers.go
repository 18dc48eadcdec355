// Package handlers maps HTTP requests onto the domain services.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/response"
)

// bindJSON decodes the request body into req and answers 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data: "+err.Error())
		return false
	}
	return true
}

// intParam parses an integer path parameter and answers 400 on failure
func intParam(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid "+name+": "+c.Param(name))
		return 0, false
	}
	return value, true
}

// requiredQuery returns a non-empty query parameter and answers 400 when it is missing
func requiredQuery(c *gin.Context, name string) (string, bool) {
	value := c.Query(name)
	if value == "" {
		response.Error(c, http.StatusBadRequest, "Query parameter '"+name+"' is required")
		return "", false
	}
	return value, true
}
