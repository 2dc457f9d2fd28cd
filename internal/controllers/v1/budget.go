package v1

import (
	"net/http"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/pennyflow/backend/internal/types"
	ez_uuid "github.com/pennyflow/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}
	{
		r.OPTIONS("/month", OptionsBudgetMonth)
		r.GET("/month", GetBudgetMonth)
		r.OPTIONS("/copy", OptionsBudgetCopy)
		r.POST("/copy", CopyBudgets)
	}
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsBudgetMonth(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsBudgetCopy(c *gin.Context) {
	httputil.OptionsPost(c)
}

func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Budget{})
}

func CreateBudget(c *gin.Context) {
	var editable BudgetEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	budget := editable.model(currentUser(c))

	err = models.DB.Create(&budget).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("datetime(month) DESC, datetime(created_at) ASC").
		Where("budgets.user_id = ?", currentUser(c))

	if filter.CategoryID != ez_uuid.Nil {
		q = q.Where("budgets.category_id = ?", filter.CategoryID.UUID)
	}

	if filter.Month != "" {
		month, err := types.ParseMonth(filter.Month)
		if err != nil {
			httpErrors(c, httputil.ErrInvalidQueryString)
			return
		}
		q = q.Where("budgets.month = ?", month)
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var budgets []models.Budget
	err := q.Find(&budgets).Error
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

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// GetBudgetMonth returns all budgets for one month together with the
// amount spent against each of them and the totals over all of them.
func GetBudgetMonth(c *gin.Context) {
	var query QueryMonth
	if err := c.Bind(&query); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	if query.Month.IsZero() {
		c.JSON(http.StatusBadRequest, httpError{Error: errMonthNotSetInQuery.Error()})
		return
	}

	userID := currentUser(c)
	month := types.MonthOf(query.Month)

	var budgets []models.Budget
	err := models.DB.
		Order("datetime(created_at) ASC").
		Where("user_id = ?", userID).
		Where("month = ?", month).
		Find(&budgets).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := BudgetMonth{
		Month:           month,
		Budgets:         make([]MonthBudget, 0, len(budgets)),
		TotalBudget:     decimal.Zero,
		TotalSpent:      decimal.Zero,
		RemainingBudget: decimal.Zero,
	}

	for _, budget := range budgets {
		budgetSpent, err := budget.Spent(models.DB)
		if err != nil {
			httpErrors(c, err)
			return
		}

		data.Budgets = append(data.Budgets, MonthBudget{
			Budget:    newBudget(c, budget),
			Spent:     budgetSpent,
			Remaining: budget.Amount.Sub(budgetSpent),
		})

		data.TotalBudget = data.TotalBudget.Add(budget.Amount)
		data.TotalSpent = data.TotalSpent.Add(budgetSpent)
	}

	data.RemainingBudget = data.TotalBudget.Sub(data.TotalSpent)

	c.JSON(http.StatusOK, BudgetMonthResponse{Data: &data})
}

// CopyBudgets copies the budgets of the preceding month into the month
// given in the query string. Categories that already have a budget in
// the target month are left untouched.
func CopyBudgets(c *gin.Context) {
	var query QueryMonth
	if err := c.Bind(&query); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	if query.Month.IsZero() {
		c.JSON(http.StatusBadRequest, httpError{Error: errMonthNotSetInQuery.Error()})
		return
	}

	userID := currentUser(c)
	target := types.MonthOf(query.Month)
	source := target.AddDate(0, -1)

	var sourceBudgets []models.Budget
	err := models.DB.
		Order("datetime(created_at) ASC").
		Where("user_id = ?", userID).
		Where("month = ?", source).
		Find(&sourceBudgets).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	var existing []models.Budget
	err = models.DB.
		Where("user_id = ?", userID).
		Where("month = ?", target).
		Find(&existing).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	budgeted := make(map[uuid.UUID]bool, len(existing))
	for _, budget := range existing {
		budgeted[budget.CategoryID] = true
	}

	var created []models.Budget
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		for _, budget := range sourceBudgets {
			if budgeted[budget.CategoryID] {
				continue
			}

			copied := models.Budget{
				UserID:     userID,
				CategoryID: budget.CategoryID,
				Month:      target,
				Amount:     budget.Amount,
			}

			if err := tx.Create(&copied).Error; err != nil {
				return err
			}

			created = append(created, copied)
		}

		return nil
	})
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := make([]Budget, 0, len(created))
	for _, budget := range created {
		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusCreated, BudgetListResponse{Data: data})
}

func GetBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var budget models.Budget
	err := models.DB.First(&budget, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

func UpdateBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var budget models.Budget
	err := models.DB.First(&budget, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		httpErrors(c, err)
		return
	}

	var editable BudgetEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Model(&budget).Select("", updateFields...).Updates(editable.model(budget.UserID)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

func DeleteBudget(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var budget models.Budget
	err := models.DB.First(&budget, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
