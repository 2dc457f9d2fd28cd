package v1

import (
	"net/http"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	ez_uuid "github.com/pennyflow/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterCategoryRuleRoutes registers the routes for category rules
// with the RouterGroup that is passed.
func RegisterCategoryRuleRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategoryRuleList)
		r.GET("", GetCategoryRules)
		r.POST("", CreateCategoryRule)
	}
	{
		r.OPTIONS("/:id", OptionsCategoryRuleDetail)
		r.GET("/:id", GetCategoryRule)
		r.PATCH("/:id", UpdateCategoryRule)
		r.DELETE("/:id", DeleteCategoryRule)
	}
}

func OptionsCategoryRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsCategoryRuleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.CategoryRule{})
}

func CreateCategoryRule(c *gin.Context) {
	var editable CategoryRuleEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	rule := editable.model(currentUser(c))

	err = models.DB.Create(&rule).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newCategoryRule(c, rule)
	c.JSON(http.StatusCreated, CategoryRuleResponse{Data: &data})
}

func GetCategoryRules(c *gin.Context) {
	var filter CategoryRuleQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Rules are returned in the order they are applied in
	q := models.DB.
		Order("priority ASC, datetime(created_at) ASC").
		Where("category_rules.user_id = ?", currentUser(c))

	if filter.CategoryID != ez_uuid.Nil {
		q = q.Where("category_rules.category_id = ?", filter.CategoryID.UUID)
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var rules []models.CategoryRule
	err := q.Find(&rules).Error
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

	data := make([]CategoryRule, 0, len(rules))
	for _, rule := range rules {
		data = append(data, newCategoryRule(c, rule))
	}

	c.JSON(http.StatusOK, CategoryRuleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetCategoryRule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var rule models.CategoryRule
	err := models.DB.First(&rule, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newCategoryRule(c, rule)
	c.JSON(http.StatusOK, CategoryRuleResponse{Data: &data})
}

func UpdateCategoryRule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var rule models.CategoryRule
	err := models.DB.First(&rule, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryRuleEditable{})
	if err != nil {
		httpErrors(c, err)
		return
	}

	var editable CategoryRuleEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Model(&rule).Select("", updateFields...).Updates(editable.model(rule.UserID)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newCategoryRule(c, rule)
	c.JSON(http.StatusOK, CategoryRuleResponse{Data: &data})
}

func DeleteCategoryRule(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var rule models.CategoryRule
	err := models.DB.First(&rule, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Delete(&rule).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
