package util

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const MaxPageLimit = 100

type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Pagination) TotalPages(total int64) int {
	if p.Limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

// ParsePagination reads page and limit from the query string. Out of range
// values are rejected rather than clamped.
func ParsePagination(c *gin.Context, defaultLimit int) (Pagination, error) {
	p := Pagination{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", defaultLimit),
	}
	if p.Page < 1 {
		return p, NewBadRequest("page must be greater than or equal to 1")
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return p, NewBadRequest("limit must be between 1 and 100")
	}
	return p, nil
}

// queryInt falls back to def when the parameter is missing or not a number.
func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}
