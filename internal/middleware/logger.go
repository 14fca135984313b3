package middleware

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
)

type LoggerConfig struct {
	EnableColors bool
	SkipPaths    []string
}

func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		EnableColors: true,
		SkipPaths:    []string{"/health", "/ping"},
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		for _, skipPath := range config.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		size := c.Writer.Size()
		email := c.GetString("email")

		var methodColor, statusColor, resetColor string
		if config.EnableColors {
			methodColor = getMethodColor(method)
			statusColor = getStatusColor(status)
			resetColor = ColorReset
		}

		line := fmt.Sprintf("%s%3d%s %s%-6s%s %s%s%s %s%v %s%s",
			statusColor, status, resetColor,
			methodColor, method, resetColor,
			ColorBlue, path, resetColor,
			ColorGray, latency, formatSize(int64(size)), resetColor)
		if email != "" {
			line += fmt.Sprintf(" %s%s%s", ColorGray, email, resetColor)
		}
		log.Print(line)
	}
}

func formatSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	} else if bytes < 1024*1024 {
		return fmt.Sprintf("%.1fKB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1fMB", float64(bytes)/(1024*1024))
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return ColorGreen
	case "POST":
		return ColorBlue
	case "PUT":
		return ColorYellow
	case "DELETE":
		return ColorRed
	case "PATCH":
		return ColorPurple
	default:
		return ColorWhite
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return ColorGreen
	case status >= 300 && status < 400:
		return ColorCyan
	case status >= 400 && status < 500:
		return ColorYellow
	case status >= 500:
		return ColorRed
	default:
		return ColorWhite
	}
}
