package middleware

import (
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/hashid"

	"github.com/gin-gonic/gin"
)

// HashIDParam is the route parameter every id token travels in.
const HashIDParam = "hashId"

// DecodeHashID decodes the :hashId route parameter, when the matched route
// has one, and stores the numeric id for util.ParamID. A token that does not
// decode is answered with 400 before the handler runs.
func DecodeHashID(codec *hashid.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param(HashIDParam)
		if token == "" {
			c.Next()
			return
		}

		id, err := codec.DecodeUint(token)
		if err != nil {
			util.HandleError(c, util.ErrInvalidID)
			return
		}

		c.Set(util.ContextParamIDKey, id)
		c.Next()
	}
}
