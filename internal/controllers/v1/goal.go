package v1

import (
	"fmt"
	"net/http"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterSavingsGoalRoutes registers the routes for savings goals
// with the RouterGroup that is passed.
func RegisterSavingsGoalRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsSavingsGoalList)
		r.GET("", GetSavingsGoals)
		r.POST("", CreateSavingsGoal)
	}
	{
		r.OPTIONS("/:id", OptionsSavingsGoalDetail)
		r.GET("/:id", GetSavingsGoal)
		r.PATCH("/:id", UpdateSavingsGoal)
		r.DELETE("/:id", DeleteSavingsGoal)
	}
}

func OptionsSavingsGoalList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsSavingsGoalDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.SavingsGoal{})
}

func CreateSavingsGoal(c *gin.Context) {
	var editable SavingsGoalEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	goal := editable.model(currentUser(c))

	err = models.DB.Create(&goal).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newSavingsGoal(c, goal)
	c.JSON(http.StatusCreated, SavingsGoalResponse{Data: &data})
}

func GetSavingsGoals(c *gin.Context) {
	var filter SavingsGoalQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("datetime(created_at) ASC").
		Where("savings_goals.user_id = ?", currentUser(c)).
		Where(&models.SavingsGoal{
			Completed: filter.Completed,
		}, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var goals []models.SavingsGoal
	err := q.Find(&goals).Error
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

	data := make([]SavingsGoal, 0, len(goals))
	for _, goal := range goals {
		data = append(data, newSavingsGoal(c, goal))
	}

	c.JSON(http.StatusOK, SavingsGoalListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetSavingsGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var goal models.SavingsGoal
	err := models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newSavingsGoal(c, goal)
	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &data})
}

func UpdateSavingsGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var goal models.SavingsGoal
	err := models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SavingsGoalEditable{})
	if err != nil {
		httpErrors(c, err)
		return
	}

	var editable SavingsGoalEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Model(&goal).Select("", updateFields...).Updates(editable.model(goal.UserID)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newSavingsGoal(c, goal)
	c.JSON(http.StatusOK, SavingsGoalResponse{Data: &data})
}

func DeleteSavingsGoal(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var goal models.SavingsGoal
	err := models.DB.First(&goal, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Delete(&goal).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
