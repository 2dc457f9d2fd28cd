package router

import (
	"net/http"
	"os"
	"strings"

	v1 "github.com/pennyflow/backend/internal/controllers/v1"
	"github.com/pennyflow/backend/internal/httputil"
	"github.com/pennyflow/backend/internal/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// This is overridden at build time via -ldflags.
var version = "0.0.0"

// Router controls the routes for the API.
func Router() (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	// CORS settings
	allowOrigins, ok := os.LookupEnv("CORS_ALLOW_ORIGINS")
	if ok {
		log.Debug().Str("allowOrigins", allowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Fields(allowOrigins),
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-User-ID"},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(_, _, _ string, _ int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	pprof.Register(r)

	/*
	 *  Route setup
	 */
	r.GET("", GetRoot)
	r.OPTIONS("", OptionsRoot)

	r.GET("/version", GetVersion)
	r.OPTIONS("/version", OptionsVersion)

	r.GET("/healthz", GetHealth)
	r.OPTIONS("/healthz", OptionsHealth)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 setup. Everything below /v1 requires an authenticated user.
	group := r.Group("/v1")
	group.Use(AuthMiddleware())
	{
		group.GET("", GetV1)
		group.OPTIONS("", OptionsV1)
		group.DELETE("", v1.Cleanup)
	}

	v1.RegisterAccountRoutes(group.Group("/accounts"))
	v1.RegisterCategoryRoutes(group.Group("/categories"))
	v1.RegisterTransactionRoutes(group.Group("/transactions"))
	v1.RegisterBudgetRoutes(group.Group("/budgets"))
	v1.RegisterSavingsGoalRoutes(group.Group("/goals"))
	v1.RegisterSubscriptionRoutes(group.Group("/subscriptions"))
	v1.RegisterCategoryRuleRoutes(group.Group("/category-rules"))
	v1.RegisterAnalyticsRoutes(group.Group("/analytics"))
	v1.RegisterInsightRoutes(group.Group("/insights"))
	v1.RegisterExportRoutes(group.Group("/export"))

	log.Info().Msg("backend startup complete")

	return r, nil
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`
	Version string `json:"version" example:"https://example.com/api/version"`
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`
	V1      string `json:"v1" example:"https://example.com/api/v1"`
}

// GetRoot returns the entrypoint for the API, listing all endpoints.
func GetRoot(c *gin.Context) {
	url := httputil.RequestHost(c)

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

type VersionResponse struct {
	Data VersionObject `json:"data"`
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"`
}

// GetVersion returns the software version of the API.
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// GetHealth returns the health state of the backend.
func GetHealth(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

func OptionsHealth(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Accounts      string `json:"accounts" example:"https://example.com/api/v1/accounts"`
	Categories    string `json:"categories" example:"https://example.com/api/v1/categories"`
	Transactions  string `json:"transactions" example:"https://example.com/api/v1/transactions"`
	Budgets       string `json:"budgets" example:"https://example.com/api/v1/budgets"`
	Goals         string `json:"goals" example:"https://example.com/api/v1/goals"`
	Subscriptions string `json:"subscriptions" example:"https://example.com/api/v1/subscriptions"`
	CategoryRules string `json:"categoryRules" example:"https://example.com/api/v1/category-rules"`
	Analytics     string `json:"analytics" example:"https://example.com/api/v1/analytics"`
	Insights      string `json:"insights" example:"https://example.com/api/v1/insights"`
	Export        string `json:"export" example:"https://example.com/api/v1/export"`
}

// GetV1 returns general information about the v1 API.
func GetV1(c *gin.Context) {
	url := httputil.RequestHost(c) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Accounts:      url + "/accounts",
			Categories:    url + "/categories",
			Transactions:  url + "/transactions",
			Budgets:       url + "/budgets",
			Goals:         url + "/goals",
			Subscriptions: url + "/subscriptions",
			CategoryRules: url + "/category-rules",
			Analytics:     url + "/analytics",
			Insights:      url + "/insights",
			Export:        url + "/export",
		},
	})
}

func OptionsV1(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET, DELETE")
	c.Status(http.StatusNoContent)
}
