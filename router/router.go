package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-ordering/config"
	"github.com/yeremiapane/food-ordering/controllers"
	"github.com/yeremiapane/food-ordering/middlewares"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/repository"
	"github.com/yeremiapane/food-ordering/services"
	"github.com/yeremiapane/food-ordering/utils"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Repositories
	menuRepo := repository.NewMenuRepository(db)
	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := services.NewAuthService(db, userRepo, tokens)
	catalogSvc := services.NewCatalogService(menuRepo)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartSvc)

	// Controllers
	userCtrl := controllers.NewUserController(authSvc)
	menuCtrl := controllers.NewMenuController(catalogSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)

	limiter := middlewares.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSAllowedOrigins))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(limiter.RateLimit())

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter(cfg.AuthRatePerMinute).RateLimit())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	r.GET("/menu", menuCtrl.ListAvailable)

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.Authenticate(authSvc), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("/menu/all", menuCtrl.ListAll)
		admin.POST("/menu", menuCtrl.Create)
		admin.PUT("/menu/:id", menuCtrl.Update)
		admin.DELETE("/menu/:id", menuCtrl.Delete)
	}

	// ----------------------------------------------------------------
	//                      CUSTOMER ROUTES
	// ----------------------------------------------------------------
	user := r.Group("/")
	user.Use(middlewares.Authenticate(authSvc))
	{
		user.GET("/cart", cartCtrl.Get)
		user.POST("/cart/add", cartCtrl.Add)
		user.PUT("/cart/update", cartCtrl.Update)
		user.DELETE("/cart/remove", cartCtrl.Remove)

		user.POST("/orders", orderCtrl.Place)
		user.GET("/orders", orderCtrl.List)
	}

	return r
}
