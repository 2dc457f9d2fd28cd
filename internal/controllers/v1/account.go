package v1

import (
	"fmt"
	"net/http"

	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsAccountList)
		r.GET("", GetAccounts)
		r.POST("", CreateAccount)
	}
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}
}

func OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsAccountDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Account{})
}

func CreateAccount(c *gin.Context) {
	var editable AccountEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	account := editable.model(currentUser(c))

	err = models.DB.Create(&account).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newAccount(c, account)
	c.JSON(http.StatusCreated, AccountResponse{Data: &data})
}

func GetAccounts(c *gin.Context) {
	var filter AccountQueryFilter
	if err := c.Bind(&filter); err != nil {
		httpErrors(c, httputil.ErrInvalidQueryString)
		return
	}

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("name ASC").
		Where("accounts.user_id = ?", currentUser(c)).
		Where(&models.Account{
			Type:     models.AccountType(filter.Type),
			Currency: filter.Currency,
			Archived: filter.Archived,
		}, queryFields...)

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Search != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 records and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var accounts []models.Account
	err := q.Find(&accounts).Error
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

	data := make([]Account, 0, len(accounts))
	for _, account := range accounts {
		data = append(data, newAccount(c, account))
	}

	c.JSON(http.StatusOK, AccountListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

func GetAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var account models.Account
	err := models.DB.First(&account, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newAccount(c, account)
	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

func UpdateAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var account models.Account
	err := models.DB.First(&account, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AccountEditable{})
	if err != nil {
		httpErrors(c, err)
		return
	}

	var editable AccountEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Model(&account).Select("", updateFields...).Updates(editable.model(account.UserID)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	data := newAccount(c, account)
	c.JSON(http.StatusOK, AccountResponse{Data: &data})
}

func DeleteAccount(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		httpErrors(c, err)
		return
	}

	var account models.Account
	err := models.DB.First(&account, "id = ? AND user_id = ?", uri.ID, currentUser(c)).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	err = models.DB.Delete(&account).Error
	if err != nil {
		httpErrors(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
