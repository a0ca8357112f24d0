package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reactivities/reactivities-go/types"
)

// ErrorHandler recovers from handler panics and serializes them as the
// shared ApiError body. Details are only exposed outside release mode.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic recovered: %v", r)

				details := ""
				if gin.Mode() != gin.ReleaseMode {
					details = fmt.Sprint(r)
				}

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					types.NewApiError(http.StatusInternalServerError, "An internal server error occurred", details))
			}
		}()

		c.Next()
	}
}
