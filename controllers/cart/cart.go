package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imanmaris99/amimum-api/apperrors"
	"github.com/imanmaris99/amimum-api/cache"
	"github.com/imanmaris99/amimum-api/middleware"
	"github.com/imanmaris99/amimum-api/models"
	"github.com/imanmaris99/amimum-api/web"
)

type AddCartItemRequest struct {
	ProductID  uint `json:"product_id" binding:"required"`
	PackTypeID uint `json:"pack_type_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int   `json:"quantity" binding:"required,min=1"`
	IsActive *bool `json:"is_active"`
}

type cartPage struct {
	Items []Line `json:"items"`
	Total Totals `json:"totals"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// POST /carts
func AddCartItemHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}

		var req AddCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, apperrors.New(apperrors.KindBadRequest, "Invalid input: "+err.Error()))
			return
		}

		var packType models.PackType
		if err := db.Where("id = ? AND product_id = ?", req.PackTypeID, req.ProductID).
			First(&packType).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				web.Fail(c, apperrors.New(apperrors.KindBadRequest, "Product variant does not exist"))
				return
			}
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to validate product", err))
			return
		}

		item := models.CartProduct{
			UserID:     userID,
			ProductID:  req.ProductID,
			PackTypeID: req.PackTypeID,
			Quantity:   req.Quantity,
			IsActive:   true,
		}
		if err := db.Create(&item).Error; err != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to add item to cart", err))
			return
		}

		cacheStore.InvalidateCart(c.Request.Context(), userID)
		web.OK(c, http.StatusCreated, "Item added to cart", item)
	}
}

// GET /carts
func ListCartHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}
		page, limit := pagination(c)
		ctx := c.Request.Context()

		key := cache.CartKey(userID, page, limit)
		var cached cartPage
		if cacheStore.GetJSON(ctx, key, &cached) {
			web.OK(c, http.StatusOK, "Cart fetched", cached)
			return
		}

		snapshot, err := GetSnapshot(db, userID)
		if err != nil {
			web.Fail(c, err)
			return
		}

		start := (page - 1) * limit
		items := []Line{}
		if start < len(snapshot.Lines) {
			end := start + limit
			if end > len(snapshot.Lines) {
				end = len(snapshot.Lines)
			}
			items = snapshot.Lines[start:end]
		}

		result := cartPage{Items: items, Total: snapshot.Totals, Page: page, Limit: limit}
		cacheStore.SetJSON(ctx, key, result, cache.TTLCartSnapshot)
		web.OK(c, http.StatusOK, "Cart fetched", result)
	}
}

// GET /carts/count
func CountCartHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}
		ctx := c.Request.Context()

		key := cache.CartCountKey(userID)
		var cached int64
		if cacheStore.GetJSON(ctx, key, &cached) {
			web.OK(c, http.StatusOK, "Cart count fetched", gin.H{"count": cached})
			return
		}

		var count int64
		if err := db.Model(&models.CartProduct{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Count(&count).Error; err != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to count cart items", err))
			return
		}

		cacheStore.SetJSON(ctx, key, count, cache.TTLCartCount)
		web.OK(c, http.StatusOK, "Cart count fetched", gin.H{"count": count})
	}
}

// PUT /carts/:id
func UpdateCartItemHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}

		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Fail(c, apperrors.New(apperrors.KindBadRequest, "Invalid input: "+err.Error()))
			return
		}

		var item models.CartProduct
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				web.Fail(c, apperrors.New(apperrors.KindNotFound, "Cart item not found"))
				return
			}
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to fetch cart item", err))
			return
		}

		item.Quantity = req.Quantity
		if req.IsActive != nil {
			item.IsActive = *req.IsActive
		}
		if err := db.Save(&item).Error; err != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to update cart item", err))
			return
		}

		cacheStore.InvalidateCart(c.Request.Context(), userID)
		web.OK(c, http.StatusOK, "Cart item updated", item)
	}
}

// DELETE /carts/:id
func DeleteCartItemHandler(db *gorm.DB, cacheStore *cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			web.Fail(c, apperrors.New(apperrors.KindUnauthorized, "Unauthorized"))
			return
		}

		result := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			Delete(&models.CartProduct{})
		if result.Error != nil {
			web.Fail(c, apperrors.Wrap(apperrors.KindInternal, "Failed to delete item", result.Error))
			return
		}
		if result.RowsAffected == 0 {
			web.Fail(c, apperrors.New(apperrors.KindNotFound, "Cart item not found"))
			return
		}

		cacheStore.InvalidateCart(c.Request.Context(), userID)
		web.OK(c, http.StatusOK, "Cart item deleted", nil)
	}
}
