// Package menuapi serves the stored menu over HTTP and accepts admin imports.
package menuapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"menuhub/internal/store"
	"menuhub/pkg/models"
)

type Handler struct {
	Store    store.Store
	Importer *store.Importer
	log      *zap.Logger
}

func NewHandler(s store.Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Store: s, Importer: store.NewImporter(s, log), log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/menu", h.menu)                          // GET /menu
	rg.GET("/categories", h.listCategories)          // GET /categories
	rg.GET("/categories/:id/items", h.categoryItems) // GET /categories/:id/items
	rg.GET("/items", h.listItems)                    // GET /items?q=&category=&limit=&offset=
	rg.GET("/items/:id", h.getItem)                  // GET /items/:id
}

// RegisterAdmin mounts the write endpoints; rg must already be protected.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("/import", h.importMenu)
}

func (h *Handler) menu(c *gin.Context) {
	cats, err := h.Store.ListCategories(c.Request.Context())
	if err != nil {
		h.log.Error("list categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	items, err := h.Store.ListItems(c.Request.Context(), store.ItemQuery{})
	if err != nil {
		h.log.Error("list items failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	menu := models.AppMenu{Categories: []models.AppCategory{}, Items: []models.AppItem{}}
	for _, cat := range cats {
		if cat.Active {
			menu.Categories = append(menu.Categories, cat)
		}
	}
	for _, it := range items {
		if it.Active {
			menu.Items = append(menu.Items, it)
		}
	}
	c.JSON(http.StatusOK, menu)
}

func (h *Handler) listCategories(c *gin.Context) {
	cats, err := h.Store.ListCategories(c.Request.Context())
	if err != nil {
		h.log.Error("list categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(cats), "categories": cats})
}

func (h *Handler) categoryItems(c *gin.Context) {
	q := store.ItemQuery{
		CategoryID: c.Param("id"),
		Limit:      parseInt(c.Query("limit"), 0),
		Offset:     parseInt(c.Query("offset"), 0),
	}
	h.respondItems(c, q)
}

func (h *Handler) listItems(c *gin.Context) {
	q := store.ItemQuery{
		Q:          c.Query("q"),
		CategoryID: c.Query("category"),
		Limit:      parseInt(c.Query("limit"), 50),
		Offset:     parseInt(c.Query("offset"), 0),
	}
	h.respondItems(c, q)
}

func (h *Handler) respondItems(c *gin.Context, q store.ItemQuery) {
	items, err := h.Store.ListItems(c.Request.Context(), q)
	if err != nil {
		h.log.Error("list items failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	if items == nil {
		items = []models.AppItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"limit":  q.Limit,
		"offset": q.Offset,
		"items":  items,
	})
}

func (h *Handler) getItem(c *gin.Context) {
	it, err := h.Store.GetItem(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		h.log.Error("get item failed", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	c.JSON(http.StatusOK, it)
}

func (h *Handler) importMenu(c *gin.Context) {
	var menu models.AppMenu
	if err := c.ShouldBindJSON(&menu); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	rep, err := h.Importer.Import(c.Request.Context(), menu)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusOK
	if rep.Failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, rep)
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return def
	}
	return n
}
