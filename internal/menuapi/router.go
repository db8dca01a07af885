package menuapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"menuhub/internal/auth"
	"menuhub/internal/store"
)

type RouterConfig struct {
	Store             store.Store
	StoreName         string
	Tokens            auth.TokenService
	AdminPasswordHash string
	StaticMenuPath    string
	Log               *zap.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(RequestLogger(log), gin.Recovery())
	_ = r.SetTrustedProxies([]string{"127.0.0.1"})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.StoreName})
	})

	if cfg.StaticMenuPath != "" {
		r.GET("/static/menu.json", StaticMenu(cfg.StaticMenuPath))
	}

	h := NewHandler(cfg.Store, log)
	h.RegisterRoutes(r.Group(""))

	// without a signing secret and an admin hash nothing can be written
	if len(cfg.Tokens.Secret) == 0 || cfg.AdminPasswordHash == "" {
		log.Warn("admin endpoints disabled: token secret or admin password hash missing")
		r.POST("/auth/login", adminDisabled)
		r.Any("/admin/*path", adminDisabled)
		return r
	}

	auth.NewHandler(cfg.AdminPasswordHash, cfg.Tokens).RegisterRoutes(r.Group("/auth"))

	admin := r.Group("/admin")
	admin.Use(auth.AuthMiddleware(cfg.Tokens), auth.RequireRole(auth.RoleAdmin))
	h.RegisterAdmin(admin)

	return r
}

func adminDisabled(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "admin disabled"})
}
