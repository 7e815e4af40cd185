package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DataResponse is the success envelope.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Data wraps payload in the {"data": ...} envelope.
func Data(c *gin.Context, status int, payload interface{}) {
	JSON(c, status, DataResponse{Data: payload})
}

// OK writes a 200 OK data envelope.
func OK(c *gin.Context, payload interface{}) {
	Data(c, http.StatusOK, payload)
}
