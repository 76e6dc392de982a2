package routes

import (
	"net/http"

	"tastygram/admin"
	"tastygram/auth"
	"tastygram/engagement"
	"tastygram/home"
	"tastygram/live"
	"tastygram/middleware"
	"tastygram/profile"
	"tastygram/ratelim"
	"tastygram/recipes"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/v1/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/v1/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/v1/auth/token/refresh", ratelim.RateLimit(auth.RefreshToken))
}

func AddRecipeRoutes(router *httprouter.Router) {
	router.GET("/api/v1/recipes/categories", ratelim.RateLimit(recipes.GetCategories))
	router.GET("/api/v1/recipes", middleware.OptionalAuth(recipes.GetRecipes))
	router.GET("/api/v1/recipes/recipe/:id", middleware.OptionalAuth(recipes.GetRecipe))
	router.GET("/api/v1/recipes/author/:username", ratelim.RateLimit(recipes.GetRecipesByAuthor))
	router.POST("/api/v1/recipes", middleware.Authenticate(recipes.CreateRecipe))
	router.PUT("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.UpdateRecipe))
	router.DELETE("/api/v1/recipes/recipe/:id", middleware.Authenticate(recipes.DeleteRecipe))
}

func AddEngagementRoutes(router *httprouter.Router) {
	router.POST("/api/v1/recipes/recipe/:id/like", middleware.Authenticate(engagement.ToggleLike))
	router.GET("/api/v1/recipes/recipe/:id/likes", middleware.OptionalAuth(engagement.GetLikeStatus))
	router.POST("/api/v1/recipes/recipe/:id/reviews", ratelim.RateLimit(middleware.Authenticate(engagement.AddReview)))
	router.GET("/api/v1/recipes/recipe/:id/reviews", middleware.OptionalAuth(engagement.GetReviews))
	router.DELETE("/api/v1/recipes/recipe/:id/reviews/:reviewId", middleware.RequireAdmin(engagement.DeleteReview))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/v1/profile/profile", middleware.Authenticate(profile.GetProfile))
	router.PUT("/api/v1/profile/edit", middleware.Authenticate(profile.EditProfile))
	router.GET("/api/v1/profile/recipes", middleware.Authenticate(profile.GetMyRecipes))
	router.GET("/api/v1/profile/likes", middleware.Authenticate(profile.GetMyLikes))
	router.GET("/api/v1/user/:username", ratelim.RateLimit(profile.GetUserProfile))
}

func AddAdminRoutes(router *httprouter.Router) {
	router.GET("/api/v1/admin/users", middleware.RequireAdmin(admin.ListUsers))
	router.DELETE("/api/v1/admin/users/:id", middleware.RequireAdmin(admin.DeleteUser))
	router.DELETE("/api/v1/admin/recipes/:id", middleware.RequireAdmin(admin.DeleteRecipe))
	router.GET("/api/v1/admin/reviews", middleware.RequireAdmin(admin.ListAllReviews))
	router.GET("/api/v1/admin/analytics", middleware.RequireAdmin(admin.GetAnalytics))
}

func AddHomeRoutes(router *httprouter.Router) {
	router.GET("/api/v1/home/:apiRoute", middleware.OptionalAuth(home.GetHomeContent))
}

func AddLiveRoutes(router *httprouter.Router, feed *live.Feed) {
	router.GET("/ws/engagement", feed.HandleWebSocket)
}
