package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autohub-api/internal/domain"
	"autohub-api/internal/service"
	resp "autohub-api/internal/transport/http/response"
)

type CategoryHandler struct {
	catalog *service.CatalogService
}

func NewCategoryHandler(catalog *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

type categoryReq struct {
	Name        string       `json:"name" binding:"required"`
	Slug        string       `json:"slug" binding:"required"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	ParentID    *uint        `json:"parentId"`
	Featured    bool         `json:"featured"`
	SEO         productSEOIn `json:"seo"`
}

func (r *categoryReq) toDomain() *domain.Category {
	return &domain.Category{
		Name:           r.Name,
		Slug:           r.Slug,
		Description:    r.Description,
		Image:          r.Image,
		ParentID:       r.ParentID,
		Featured:       r.Featured,
		SEOTitle:       r.SEO.Title,
		SEODescription: r.SEO.Description,
		SEOKeywords:    strings.Join(r.SEO.Keywords, ","),
	}
}

func toCategoryView(c *domain.Category) gin.H {
	return gin.H{
		"id":           c.ID,
		"name":         c.Name,
		"slug":         c.Slug,
		"description":  c.Description,
		"image":        c.Image,
		"parentId":     c.ParentID,
		"productCount": c.ProductCount,
		"featured":     c.Featured,
		"seo": gin.H{
			"title":       c.SEOTitle,
			"description": c.SEODescription,
			"keywords":    splitCSV(c.SEOKeywords),
			"slug":        c.Slug,
		},
		"createdAt": c.CreatedAt,
		"updatedAt": c.UpdatedAt,
	}
}

func (h *CategoryHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		categories []domain.Category
		err        error
	)
	if c.Query("featured") == "true" {
		categories, err = h.catalog.FeaturedCategories(ctx)
	} else {
		categories, err = h.catalog.ListCategories(ctx)
	}
	if err != nil {
		resp.Err(c, err)
		return
	}
	views := make([]gin.H, 0, len(categories))
	for i := range categories {
		views = append(views, toCategoryView(&categories[i]))
	}
	resp.OK(c, views)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "required fields: name, slug")
		return
	}
	cat := req.toDomain()
	if err := h.catalog.CreateCategory(c.Request.Context(), cat); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Created(c, gin.H{"id": cat.ID}, "category created successfully")
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "required fields: name, slug")
		return
	}
	cat := req.toDomain()
	cat.ID = id
	if err := h.catalog.UpdateCategory(c.Request.Context(), cat); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Message(c, "category updated successfully")
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Message(c, "category deleted successfully")
}
