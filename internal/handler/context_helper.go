package handler

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
	"github.com/noah-isme/classroom-api/pkg/response"
)

// bindJSON decodes the request body into dest and writes a 400 on failure.
func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		appErr := appErrors.WrapAs(appErrors.ErrValidation, err, message)
		appErr.Fields = map[string]string{"body": err.Error()}
		response.Error(c, appErr)
		return false
	}
	return true
}

func setCacheHeader(c *gin.Context, hit bool) {
	if hit {
		c.Header("X-Cache", "HIT")
		return
	}
	c.Header("X-Cache", "MISS")
}
