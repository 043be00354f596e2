package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"learning_center_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

// Keys whose values are compared byte for byte later and must reach the
// handler untouched.
var rawKeys = map[string]bool{
	"password":    true,
	"newPassword": true,
	"otpCode":     true,
}

// SanitizeBody strips unsafe markup from every string of a JSON request
// body. Rich text such as lesson materials keeps the user-content subset of
// HTML.
func SanitizeBody() gin.HandlerFunc {
	policy := bluemonday.UGCPolicy()

	return func(c *gin.Context) {
		if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
			c.Next()
			return
		}

		raw, err := io.ReadAll(c.Request.Body)
		c.Request.Body.Close()
		if err != nil {
			c.Request.Body = io.NopCloser(bytes.NewReader(nil))
			c.Next()
			return
		}

		cleaned := raw
		var body interface{}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		// Malformed JSON is left for the binder to reject.
		if len(raw) > 0 && dec.Decode(&body) == nil {
			if out, err := json.Marshal(sanitizeValue(policy, body)); err == nil {
				cleaned = out
			} else {
				logger.Log.Warn("sanitize body encode failed", zap.Error(err))
			}
		}

		c.Request.Body = io.NopCloser(bytes.NewReader(cleaned))
		c.Request.ContentLength = int64(len(cleaned))
		c.Next()
	}
}

func sanitizeValue(policy *bluemonday.Policy, v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return sanitizeString(policy, val)
	case []interface{}:
		for i := range val {
			val[i] = sanitizeValue(policy, val[i])
		}
		return val
	case map[string]interface{}:
		for k, item := range val {
			if rawKeys[k] {
				continue
			}
			val[k] = sanitizeValue(policy, item)
		}
		return val
	}
	return v
}

// sanitizeString runs the policy only over values that carry markup. Plain
// text cannot open a tag, and passing it through the policy would store
// quotes, apostrophes and ampersands as entities.
func sanitizeString(policy *bluemonday.Policy, s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return policy.Sanitize(s)
}
