package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"autohub-api/internal/domain"
	"autohub-api/internal/service"
	resp "autohub-api/internal/transport/http/response"
)

type ProductHandler struct {
	catalog *service.CatalogService
}

func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type productImageIn struct {
	URL      string `json:"url" binding:"required"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
	Type     string `json:"type"` // "main" or "gallery"
}

type productSpecIn struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
	Group string `json:"group"`
}

type productInventoryIn struct {
	Quantity          int    `json:"quantity"`
	Status            string `json:"status"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

type productSEOIn struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Slug        string   `json:"slug"`
}

type productReq struct {
	Name             string             `json:"name" binding:"required"`
	Description      string             `json:"description"`
	ShortDescription string             `json:"shortDescription"`
	SKU              string             `json:"sku" binding:"required"`
	Brand            string             `json:"brand"`
	CategoryID       *uint              `json:"categoryId"`
	Price            float64            `json:"price" binding:"required,gt=0"`
	CompareAtPrice   *float64           `json:"compareAtPrice"`
	Featured         bool               `json:"featured"`
	Status           string             `json:"status"`
	Inventory        productInventoryIn `json:"inventory"`
	SEO              productSEOIn       `json:"seo"`
	Images           []productImageIn   `json:"images"`
	Specifications   []productSpecIn    `json:"specifications"`
	Tags             []string           `json:"tags"`
}

func (r *productReq) toDomain() *domain.Product {
	p := &domain.Product{
		Name:              r.Name,
		Description:       r.Description,
		ShortDescription:  r.ShortDescription,
		SKU:               r.SKU,
		Brand:             r.Brand,
		CategoryID:        r.CategoryID,
		Price:             r.Price,
		CompareAtPrice:    r.CompareAtPrice,
		Featured:          r.Featured,
		Status:            r.Status,
		InventoryQuantity: r.Inventory.Quantity,
		InventoryStatus:   r.Inventory.Status,
		LowStockThreshold: r.Inventory.LowStockThreshold,
		SEOTitle:          r.SEO.Title,
		SEODescription:    r.SEO.Description,
		SEOKeywords:       strings.Join(r.SEO.Keywords, ","),
		SEOSlug:           r.SEO.Slug,
		Tags:              strings.Join(r.Tags, ","),
	}
	for _, img := range r.Images {
		p.Images = append(p.Images, domain.ProductImage{
			URL:       img.URL,
			Alt:       img.Alt,
			Position:  img.Position,
			IsPrimary: img.Type == "main",
		})
	}
	for _, spec := range r.Specifications {
		p.Specifications = append(p.Specifications, domain.ProductSpecification{
			Name:      spec.Name,
			Value:     spec.Value,
			SpecGroup: spec.Group,
		})
	}
	return p
}

// productView is the SPA-facing shape with nested category/inventory/seo
// blocks.
type productView struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	SKU              string   `json:"sku"`
	Brand            string   `json:"brand"`
	Category         gin.H    `json:"category"`
	Price            float64  `json:"price"`
	CompareAtPrice   *float64 `json:"compareAtPrice"`
	Images           []gin.H  `json:"images"`
	Specifications   []gin.H  `json:"specifications"`
	Inventory        gin.H    `json:"inventory"`
	Tags             []string `json:"tags"`
	Featured         bool     `json:"featured"`
	Status           string   `json:"status"`
	SEO              gin.H    `json:"seo"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`
}

func toProductView(p *domain.Product) productView {
	v := productView{
		ID:               p.ID,
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		SKU:              p.SKU,
		Brand:            p.Brand,
		Category:         gin.H{"id": p.CategoryID, "name": p.CategoryName},
		Price:            p.Price,
		CompareAtPrice:   p.CompareAtPrice,
		Images:           make([]gin.H, 0, len(p.Images)),
		Specifications:   make([]gin.H, 0, len(p.Specifications)),
		Inventory: gin.H{
			"quantity":          p.InventoryQuantity,
			"status":            p.InventoryStatus,
			"lowStockThreshold": p.LowStockThreshold,
			"trackQuantity":     true,
		},
		Tags:     splitCSV(p.Tags),
		Featured: p.Featured,
		Status:   p.Status,
		SEO: gin.H{
			"title":       p.SEOTitle,
			"description": p.SEODescription,
			"keywords":    splitCSV(p.SEOKeywords),
			"slug":        p.SEOSlug,
		},
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, img := range p.Images {
		t := "gallery"
		if img.IsPrimary {
			t = "main"
		}
		v.Images = append(v.Images, gin.H{
			"id": img.ID, "url": img.URL, "alt": img.Alt,
			"position": img.Position, "type": t,
		})
	}
	for _, spec := range p.Specifications {
		v.Specifications = append(v.Specifications, gin.H{
			"name": spec.Name, "value": spec.Value, "group": spec.SpecGroup,
		})
	}
	return v
}

func splitCSV(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func (h *ProductHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if idStr := c.Query("id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			resp.Fail(c, http.StatusBadRequest, "invalid product id")
			return
		}
		p, err := h.catalog.GetProduct(ctx, uint(id))
		if err != nil {
			resp.Err(c, err)
			return
		}
		resp.OK(c, toProductView(p))
		return
	}

	var (
		products []domain.Product
		err      error
	)
	switch {
	case c.Query("featured") == "true":
		products, err = h.catalog.FeaturedProducts(ctx)
	case c.Query("all") == "true":
		products, err = h.catalog.ListProducts(ctx, true)
	default:
		products, err = h.catalog.ListProducts(ctx, false)
	}
	if err != nil {
		resp.Err(c, err)
		return
	}

	views := make([]productView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}
	resp.OK(c, views)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "required fields: name, sku, price")
		return
	}
	p := req.toDomain()
	if err := h.catalog.CreateProduct(c.Request.Context(), p); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Created(c, gin.H{"id": p.ID}, "product created successfully")
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, "required fields: name, sku, price")
		return
	}
	p := req.toDomain()
	p.ID = id
	if err := h.catalog.UpdateProduct(c.Request.Context(), p); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Message(c, "product updated successfully")
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}
	if err := h.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		resp.Err(c, err)
		return
	}
	resp.Message(c, "product deleted successfully")
}

// queryID parses the ?id= parameter shared by PUT/DELETE endpoints.
func queryID(c *gin.Context) (uint, bool) {
	idStr := c.Query("id")
	if idStr == "" {
		resp.Fail(c, http.StatusBadRequest, "id is required")
		return 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		resp.Fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}
