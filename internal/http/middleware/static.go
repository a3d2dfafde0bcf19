package middleware

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// ServeStatic serves files under baseDir for matching paths and falls
// through otherwise. Resolved paths escaping the base directory are
// rejected outright.
func ServeStatic(baseDir string) gin.HandlerFunc {
	basePath, err := filepath.Abs(baseDir)
	if err != nil {
		basePath = baseDir
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Next()
			return
		}

		requested := filepath.Join(basePath, filepath.FromSlash(c.Request.URL.Path))
		resolved, err := filepath.Abs(requested)
		if err != nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		if resolved == basePath {
			c.Next()
			return
		}
		if !strings.HasPrefix(resolved, basePath+string(filepath.Separator)) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		info, err := os.Stat(resolved)
		if err != nil || info.IsDir() {
			c.Next()
			return
		}
		c.File(resolved)
		c.Abort()
	}
}
