package util

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mssola/useragent"
)

// ClientInfo is what the stats log keeps about a request.
type ClientInfo struct {
	IP         string
	Method     string
	URL        string
	UserAgent  string
	OS         string
	Browser    string
	DeviceType string
}

// NewClientInfo parses the request line and the User-Agent header.
func NewClientInfo(c *gin.Context) ClientInfo {
	raw := c.GetHeader("User-Agent")
	info := ClientInfo{
		IP:         c.ClientIP(),
		Method:     strings.ToUpper(c.Request.Method),
		URL:        c.Request.URL.RequestURI(),
		UserAgent:  raw,
		DeviceType: "desktop",
	}
	if raw == "" {
		return info
	}

	ua := useragent.New(raw)
	info.OS = ua.OSInfo().Name
	info.Browser, _ = ua.Browser()
	switch {
	case ua.Bot():
		info.DeviceType = "bot"
	case ua.Mobile():
		info.DeviceType = "mobile"
	}
	return info
}
