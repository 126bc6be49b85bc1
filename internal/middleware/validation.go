package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/yigit/yatube/internal/pkg/apperrors"
)

// BindForm decodes the submitted form into obj. Field constraints are
// checked later by the service, so only malformed bodies fail here.
func BindForm(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil {
		return apperrors.NewBadRequestError(fmt.Sprintf("malformed form: %v", err))
	}
	return nil
}
