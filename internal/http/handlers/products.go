package handlers

import (
	"net/http"
	"strconv"
	"strings"

	intconfig "shop-backend/internal/config"
	"shop-backend/internal/domain/models"
	"shop-backend/internal/repositories"
	"shop-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func productRepo() repositories.ProductRepository {
	return repositories.ProductRepository{DB: intconfig.DB}
}

// GET /api/products
func GetProducts(c *gin.Context) {
	products, err := productRepo().ListAll(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": products, "total": len(products)})
}

type productRequest struct {
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

// POST /api/products
func CreateProduct(c *gin.Context) {
	var req productRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		RespondError(c, http.StatusBadRequest, "Product title is required", nil)
		return
	}

	product, err := productRepo().Create(c.Request.Context(), models.Product{
		Title:       strings.TrimSpace(req.Title),
		Image:       req.Image,
		Category:    req.Category,
		Description: utils.SanitizeHTML(req.Description),
		Price:       req.Price,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// PATCH /api/products/:id
func UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid product id", nil)
		return
	}

	existing, err := productRepo().GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var req productRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Title) != "" {
		existing.Title = strings.TrimSpace(req.Title)
	}
	if req.Image != "" {
		existing.Image = req.Image
	}
	if req.Category != "" {
		existing.Category = req.Category
	}
	if req.Description != "" {
		existing.Description = utils.SanitizeHTML(req.Description)
	}
	if req.Price != nil {
		existing.Price = req.Price
	}

	product, err := productRepo().Update(c.Request.Context(), existing)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /api/products/:id
func DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid product id", nil)
		return
	}

	product, err := productRepo().Delete(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
