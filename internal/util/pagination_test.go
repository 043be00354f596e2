package util

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	p, err := ParsePagination(newQueryContext(""), DefaultCourseLimit)
	require.NoError(t, err)
	assert.Equal(t, Pagination{Page: 1, Limit: 5}, p)

	p, err = ParsePagination(newQueryContext("page=3&limit=20"), DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 3, p.TotalPages(41))

	for _, q := range []string{"page=0", "limit=0", "limit=101", "page=-2"} {
		_, err := ParsePagination(newQueryContext(q), DefaultLimit)
		assert.True(t, IsKind(err, KindBadRequest), q)
	}
}
