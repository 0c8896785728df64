package routes

import (
	adminapi "finmate/internal/api/admin"
	authapi "finmate/internal/api/auth"
	financeapi "finmate/internal/api/finance"
	goalsapi "finmate/internal/api/goals"
	postsapi "finmate/internal/api/posts"
	premiumapi "finmate/internal/api/premium"
	stripewebhooks "finmate/internal/api/stripewebhook"
	usersapi "finmate/internal/api/users"
	"finmate/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public content
	r.GET("/posts", postsapi.ListPosts)
	r.GET("/posts/:slug", postsapi.GetPostBySlug)
	r.GET("/premium/plans", premiumapi.ListPlanPricing)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/basic-auth/register", authapi.Register)
	public.POST("/basic-auth/login", authapi.Login)
	public.GET("/verify", usersapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/auth/me", usersapi.GetCurrentUser)
	auth.POST("/auth/logout", authapi.Logout)
	auth.POST("/change-password", authapi.ChangePassword)

	// Premium entitlement (the backend is the source of truth here;
	// sdk/premium consumes these endpoints)
	auth.GET("/premium/subscription", premiumapi.GetSubscription)
	auth.POST("/premium/subscription", premiumapi.CreateSubscription)
	auth.DELETE("/premium/subscription", premiumapi.CancelSubscription)
	auth.GET("/premium/subscription/history", premiumapi.GetSubscriptionHistory)
	auth.POST("/premium/checkout", premiumapi.CreateCheckoutSession)
	auth.POST("/premium/billing-portal", premiumapi.CreateBillingPortal)

	// Finance
	auth.GET("/account-types", financeapi.ListAccountTypes)
	auth.GET("/account-types/:id", financeapi.GetAccountType)
	auth.GET("/money-sources", financeapi.ListMoneySources)
	auth.GET("/money-sources/grouped", financeapi.ListMoneySourcesGrouped)
	auth.POST("/money-sources", financeapi.CreateMoneySource)
	auth.GET("/transaction-types", financeapi.ListTransactionTypes)
	auth.GET("/categories", financeapi.ListCategories)
	auth.GET("/transactions", financeapi.ListTransactions)
	auth.POST("/transactions", financeapi.CreateTransaction)
	auth.PUT("/transactions/:id", financeapi.UpdateTransaction)
	auth.DELETE("/transactions/:id", financeapi.DeleteTransaction)
	auth.GET("/reports/overview", financeapi.GetOverviewReport)

	// Goals
	auth.GET("/goals", goalsapi.ListGoals)
	auth.POST("/goals", goalsapi.CreateGoal)
	auth.PUT("/goals/:id", goalsapi.UpdateGoal)
	auth.DELETE("/goals/:id", goalsapi.DeleteGoal)
	auth.GET("/goals/:id/contributions", goalsapi.ListContributions)
	auth.POST("/goals/:id/contributions", goalsapi.AddContribution)

	// Premium-only
	subscribed := auth.Group("/")
	subscribed.Use(middleware.RequireActivePremium())
	subscribed.GET("/reports/export", financeapi.ExportTransactionsCSV)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)

	admin.GET("/users", adminapi.ListUsers)
	admin.GET("/users/chart", adminapi.GetUserChart)
	admin.GET("/users/stats", adminapi.GetUserStats)
	admin.GET("/users/:id", adminapi.GetUser)
	admin.POST("/users", adminapi.CreateUser)
	admin.PUT("/users/:id", adminapi.UpdateUser)
	admin.DELETE("/users/:id", adminapi.DeleteUser)
	admin.POST("/users/:id/activate", adminapi.ActivateUser)
	admin.POST("/users/:id/deactivate", adminapi.DeactivateUser)

	admin.GET("/vouchers", adminapi.ListVouchers)
	admin.POST("/vouchers", adminapi.CreateVoucher)
	admin.PUT("/vouchers/:id", adminapi.UpdateVoucher)
	admin.DELETE("/vouchers/:id", adminapi.DeleteVoucher)

	admin.GET("/posts", adminapi.ListAllPosts)
	admin.POST("/posts", adminapi.CreatePost)
	admin.PUT("/posts/:id", adminapi.UpdatePost)
	admin.DELETE("/posts/:id", adminapi.DeletePost)

	admin.GET("/revenue/chart", adminapi.GetRevenueChart)
	admin.GET("/revenue/stats", adminapi.GetRevenueStats)
	admin.GET("/revenue/year", adminapi.GetRevenueByYear)
	admin.GET("/revenue/month", adminapi.GetRevenueByMonth)
	admin.GET("/revenue/range", adminapi.GetRevenueByRange)

	admin.GET("/plans", adminapi.ListPlanPricing)
	admin.PUT("/plans/:id", adminapi.UpdatePlanPricing)
	admin.POST("/sync-plans", adminapi.SyncPlanPricingFromStripe)
}
