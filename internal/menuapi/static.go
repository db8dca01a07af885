package menuapi

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"menuhub/internal/artifact"
)

// StaticMenu serves the converter's menu.json as written on disk. When the
// client accepts gzip and a .gz sibling exists, the sibling is sent instead.
func StaticMenu(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.Contains(c.GetHeader("Accept-Encoding"), "gzip") {
			if b, err := os.ReadFile(path + artifact.GzipSuffix); err == nil {
				c.Header("Content-Encoding", "gzip")
				c.Header("Vary", "Accept-Encoding")
				c.Data(http.StatusOK, "application/json; charset=utf-8", b)
				return
			}
		}

		b, err := os.ReadFile(path)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu not generated"})
			return
		}
		// validate JSON so a bad file doesn't silently break clients
		if !json.Valid(b) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu.json invalid JSON"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", b)
	}
}
