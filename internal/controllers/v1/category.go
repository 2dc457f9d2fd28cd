package v1

import (
	"fmt"
	"net/http"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	ez_uuid "github.com/pennyflow/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsCategoryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Category{})
}

func CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	category := editable.model(currentUser(c))

	err = models.DB.Create(&category).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusCreated, CategoryResponse{Data: &data})
}

func GetCategories(c *gin.Context) {
	var filter CategoryQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	var parentID *ez_uuid.UUID
	if filter.ParentID != ez_uuid.Nil {
		parentID = &filter.ParentID
	}

	q := models.DB.
		Order("name ASC").
		Where("categories.user_id = ?", currentUser(c)).
		Where(&models.Category{
			Kind: models.CategoryKind(filter.Kind),
		}, queryFields...)

	// The parent filter cannot go through the struct query since the
	// zero UUID would match nothing, not everything
	if parentID != nil {
		q = q.Where("parent_id = ?", parentID.UUID)
	} else if slices.Contains(setFields, "ParentID") {
		q = q.Where("parent_id IS NULL")
	}

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Search != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var categories []models.Category
	err := q.Find(&categories).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(c, category))
	}

	c.JSON(http.StatusOK, CategoryListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var category models.Category
	err := models.DB.First(&category, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

func UpdateCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var category models.Category
	err := models.DB.First(&category, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryEditable{})
	if err != nil {
		httpErrors(c, err)
		return
	}

	var editable CategoryEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Model(&category).Select("", updateFields...).Updates(editable.model(category.UserID)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newCategory(c, category)
	c.JSON(http.StatusOK, CategoryResponse{Data: &data})
}

func DeleteCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var category models.Category
	err := models.DB.First(&category, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
