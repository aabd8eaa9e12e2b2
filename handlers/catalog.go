package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogRepo "a1care/database/repository/catalog"
	"a1care/models"
)

// CatalogHandler serves the three-level service catalog. Reads are public;
// writes are wired behind the staff/admin route group.
type CatalogHandler struct {
	Repo catalogRepo.CatalogRepository
}

// ListCategoriesHandler returns all active root categories.
func (h *CatalogHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.Repo.ListCategories(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Failed to list categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListSubCategoriesHandler returns the active subcategories of a category.
func (h *CatalogHandler) ListSubCategoriesHandler(c *gin.Context) {
	categoryID := c.Param("categoryId")
	subs, err := h.Repo.ListSubCategories(c.Request.Context(), categoryID)
	if err != nil {
		getLogger(c).Error("Failed to list subcategories",
			zap.String("categoryId", categoryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list subcategories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subCategories": subs})
}

// ListItemsHandler returns the active bookable items of a subcategory.
func (h *CatalogHandler) ListItemsHandler(c *gin.Context) {
	subCategoryID := c.Param("subCategoryId")
	items, err := h.Repo.ListItems(c.Request.Context(), subCategoryID)
	if err != nil {
		getLogger(c).Error("Failed to list catalog items",
			zap.String("subCategoryId", subCategoryID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list catalog items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// CreateCategoryHandler creates a root category.
func (h *CatalogHandler) CreateCategoryHandler(c *gin.Context) {
	var category models.ServiceCategory
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if err := h.Repo.CreateCategory(c.Request.Context(), &category); err != nil {
		getLogger(c).Error("Failed to create category", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

// CreateSubCategoryHandler creates a subcategory under a category.
func (h *CatalogHandler) CreateSubCategoryHandler(c *gin.Context) {
	var sub models.ServiceSubCategory
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if sub.CategoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId is required"})
		return
	}
	if err := h.Repo.CreateSubCategory(c.Request.Context(), &sub); err != nil {
		getLogger(c).Error("Failed to create subcategory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subcategory"})
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// CreateItemHandler creates a bookable leaf item.
func (h *CatalogHandler) CreateItemHandler(c *gin.Context) {
	var item models.ServiceItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if item.SubCategoryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subCategoryId is required"})
		return
	}
	if item.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
		return
	}
	if err := h.Repo.CreateItem(c.Request.Context(), &item); err != nil {
		getLogger(c).Error("Failed to create catalog item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create catalog item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// DeactivateNodeHandler soft-deletes a catalog node. The level comes from the
// URL; deactivating a parent stops its whole subtree from resolving.
func (h *CatalogHandler) DeactivateNodeHandler(c *gin.Context) {
	level := c.Param("level")
	id := c.Param("id")
	ctx := c.Request.Context()

	var err error
	switch level {
	case "categories":
		err = h.Repo.DeactivateCategory(ctx, id)
	case "subcategories":
		err = h.Repo.DeactivateSubCategory(ctx, id)
	case "items":
		err = h.Repo.DeactivateItem(ctx, id)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown catalog level: " + level})
		return
	}

	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog node not found"})
			return
		}
		getLogger(c).Error("Failed to deactivate catalog node",
			zap.String("level", level), zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate catalog node"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catalog node deactivated"})
}
