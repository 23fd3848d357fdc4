package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/bruno/internal/initdata"
)

const (
	initDataHeader = "x-telegram-init-data"
	initDataKey    = "initData"
)

// InitDataAuth validates the init data header and stores it in the context.
func InitDataAuth(botToken string, maxAge time.Duration, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(initDataHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "init data required"})
			return
		}

		data, err := initdata.Validate(raw, botToken, maxAge, now())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid init data"})
			return
		}

		c.Set(initDataKey, data)
		c.Next()
	}
}

// initDataFrom returns the data stored by InitDataAuth.
func initDataFrom(c *gin.Context) *initdata.Data {
	return c.MustGet(initDataKey).(*initdata.Data)
}

// requestLogger logs every request with zap.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
