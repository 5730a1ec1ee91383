// Package router はアプリケーションのHTTPルーティングを組み立てます。
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	goalhandler "finance_tracker/internal/feature/goal/transport/handler"
	limithandler "finance_tracker/internal/feature/limit/transport/handler"
	txhandler "finance_tracker/internal/feature/transaction/transport/handler"
	userhandler "finance_tracker/internal/feature/user/transport/handler"
	"finance_tracker/internal/platform/http/handler"
	"finance_tracker/internal/platform/instrument"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Users        *userhandler.UserHandler
	Transactions *txhandler.TransactionHandler
	Statistics   *txhandler.StatisticsHandler
	Goals        *goalhandler.GoalHandler
	Limits       *limithandler.SpendingLimitHandler
	Ready        gin.HandlerFunc
}

// Middleware は認証ミドルウェアです。
type Middleware struct {
	// AuthRequired はベアラートークンを必須とします。
	AuthRequired gin.HandlerFunc
	// OptionalAuth はトークンがなければ匿名アクターで続行します。
	OptionalAuth gin.HandlerFunc
	// CORS は全ルートに適用されます。nilなら無効です。
	CORS gin.HandlerFunc
	// AuthThrottle は登録とログインに適用されます。nilなら無効です。
	AuthThrottle gin.HandlerFunc
}

// NewRouter は全エンドポイントを登録したgin.Engineを返します。
// ヘルスチェック以外のルートはInterceptor経由で登録され、実行ログと監査記録の対象になります。
func NewRouter(h Handlers, mw Middleware, ic *instrument.Interceptor) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if mw.CORS != nil {
		r.Use(mw.CORS)
	}

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if h.Ready != nil {
		r.GET("/readyz", h.Ready)
	}

	api := r.Group("/api")

	// ユーザー登録とログインは匿名アクターで監査される
	users := api.Group("/users")
	if mw.AuthThrottle != nil {
		users.Use(mw.AuthThrottle)
	}
	users.POST("/register", mw.OptionalAuth, ic.Endpoint(http.MethodPost, "UserHandler.Register", h.Users.Register))
	users.POST("/login", mw.OptionalAuth, ic.Endpoint(http.MethodPost, "UserHandler.Login", h.Users.Login))

	// 認証必須のルート
	auth := api.Group("")
	auth.Use(mw.AuthRequired)
	{
		auth.POST("/users/logout", ic.Endpoint(http.MethodPost, "UserHandler.Logout", h.Users.Logout))
		auth.GET("/users", ic.Endpoint(http.MethodGet, "UserHandler.GetAll", h.Users.GetAll))
		auth.GET("/users/:id", ic.Endpoint(http.MethodGet, "UserHandler.Get", h.Users.Get))
		auth.POST("/users/:id", ic.Endpoint(http.MethodPost, "UserHandler.Update", h.Users.Update))
		auth.DELETE("/users/:id", ic.Endpoint(http.MethodDelete, "UserHandler.Delete", h.Users.Delete))

		tx := auth.Group("/transactions")
		tx.GET("", ic.Endpoint(http.MethodGet, "TransactionHandler.GetAll", h.Transactions.GetAll))
		tx.GET("/:id", ic.Endpoint(http.MethodGet, "TransactionHandler.GetByID", h.Transactions.Get))
		tx.GET("/:id/user", ic.Endpoint(http.MethodGet, "TransactionHandler.GetByUser", h.Transactions.GetByUser))
		tx.POST("", ic.Endpoint(http.MethodPost, "TransactionHandler.Create", h.Transactions.Create))
		tx.POST("/:id", ic.Endpoint(http.MethodPost, "TransactionHandler.Update", h.Transactions.Update))
		tx.DELETE("/:id", ic.Endpoint(http.MethodDelete, "TransactionHandler.Delete", h.Transactions.Delete))

		st := tx.Group("/statistics/:userId")
		st.GET("/consumption", ic.Endpoint(http.MethodGet, "StatisticsHandler.Consumption", h.Statistics.Consumption))
		st.GET("/income", ic.Endpoint(http.MethodGet, "StatisticsHandler.Income", h.Statistics.Income))
		st.GET("/balance", ic.Endpoint(http.MethodGet, "StatisticsHandler.Balance", h.Statistics.Balance))
		st.GET("/consumption-by-month", ic.Endpoint(http.MethodGet, "StatisticsHandler.ConsumptionByMonth", h.Statistics.ConsumptionByMonth))
		st.GET("/consumption-by-period", ic.Endpoint(http.MethodGet, "StatisticsHandler.ConsumptionByPeriod", h.Statistics.ConsumptionByPeriod))
		st.GET("/income-by-period", ic.Endpoint(http.MethodGet, "StatisticsHandler.IncomeByPeriod", h.Statistics.IncomeByPeriod))
		st.GET("/consumption-by-category", ic.Endpoint(http.MethodGet, "StatisticsHandler.ConsumptionByCategory", h.Statistics.ConsumptionByCategory))

		goals := auth.Group("/goals")
		goals.GET("", ic.Endpoint(http.MethodGet, "GoalHandler.GetAll", h.Goals.GetAll))
		goals.GET("/:id", ic.Endpoint(http.MethodGet, "GoalHandler.GetByID", h.Goals.Get))
		goals.GET("/:id/user", ic.Endpoint(http.MethodGet, "GoalHandler.GetByUser", h.Goals.GetByUser))
		goals.POST("", ic.Endpoint(http.MethodPost, "GoalHandler.Create", h.Goals.Create))
		goals.POST("/:id", ic.Endpoint(http.MethodPost, "GoalHandler.Update", h.Goals.Update))
		goals.DELETE("/:id", ic.Endpoint(http.MethodDelete, "GoalHandler.Delete", h.Goals.Delete))

		limits := auth.Group("/limits")
		limits.GET("/:id", ic.Endpoint(http.MethodGet, "SpendingLimitHandler.GetByID", h.Limits.Get))
		limits.GET("/:id/user", ic.Endpoint(http.MethodGet, "SpendingLimitHandler.GetByUser", h.Limits.GetByUser))
		limits.GET("/:id/exceeded", ic.Endpoint(http.MethodGet, "SpendingLimitHandler.Exceeded", h.Limits.Exceeded))
		limits.POST("", ic.Endpoint(http.MethodPost, "SpendingLimitHandler.Create", h.Limits.Create))
		limits.POST("/:id", ic.Endpoint(http.MethodPost, "SpendingLimitHandler.Update", h.Limits.Update))
		limits.DELETE("/:id", ic.Endpoint(http.MethodDelete, "SpendingLimitHandler.Delete", h.Limits.Delete))
	}

	return r
}
