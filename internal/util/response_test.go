package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"learning_center_backend/pkg/hashid"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func runHandleError(t *testing.T, err error) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/x", nil)

	HandleError(c, err)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleErrorMapsKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"bad request", NewBadRequest("bad"), http.StatusBadRequest, "bad"},
		{"unauthenticated", NewUnauthenticated("who"), http.StatusUnauthorized, "who"},
		{"unauthorized", NewUnauthorized("no"), http.StatusForbidden, "no"},
		{"not found", NewNotFound("gone"), http.StatusNotFound, "gone"},
		{"conflict", NewConflict("dup"), http.StatusConflict, "dup"},
		{"too many", NewTooManyRequests("slow"), http.StatusTooManyRequests, "slow"},
		{"hashid", hashid.ErrInvalid, http.StatusBadRequest, "Invalid id provided"},
		{"gorm", errors.Wrap(gorm.ErrRecordNotFound, "find"), http.StatusNotFound, "Resource not found"},
		{"duplicate", errors.Wrap(gorm.ErrDuplicatedKey, "create"), http.StatusConflict, "Resource already exists"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := runHandleError(t, tt.err)
			assert.Equal(t, tt.status, code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.msg, resp.Message)
		})
	}
}

func TestHandleErrorIncludesStackOutsideRelease(t *testing.T) {
	_, resp := runHandleError(t, NewBadRequest("bad"))
	assert.NotEmpty(t, resp.Stack)
}
