package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-creamery-pos/internal/cache"
	"go-creamery-pos/internal/config"
	"go-creamery-pos/internal/events"
	"go-creamery-pos/internal/handler"
	"go-creamery-pos/internal/metrics"
	"go-creamery-pos/internal/middleware"
	"go-creamery-pos/internal/model"
	"go-creamery-pos/internal/repository"
	"go-creamery-pos/internal/service"
	"go-creamery-pos/internal/ws"
	"go-creamery-pos/pkg/database"
	"go-creamery-pos/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}
	// Auto Migrate (use a dedicated migration tool in production)
	if err := db.AutoMigrate(
		&model.Privilege{}, &model.Role{}, &model.User{},
		&model.Ingredient{}, &model.Purchase{}, &model.StockMovement{},
		&model.Recipe{}, &model.RecipeLine{},
		&model.Product{}, &model.ProductionBatch{}, &model.ProductionBatchLine{},
		&model.Sale{}, &model.SaleItem{},
		&model.DiningTable{}, &model.TableOrder{}, &model.TableOrderItem{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 3. Seed default privileges, roles, and the owner account
	seedAccess(ctx, cfg, userRepo, privilegeRepo, roleRepo)

	// 4. Optional redis for caching, event fan-out and shared rate limits
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Warning: redis unavailable at %s, continuing without it: %v", cfg.Redis.Addr, err)
			rdb.Close()
			rdb = nil
		}
	}

	// 5. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run(ctx)

	// 6. Dependency Injection (Wiring Layers)
	store := repository.NewStore(db)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL, cfg.AppName)
	bus := events.NewBus(wsHub, rdb)
	caches := cache.New(rdb, cfg.MenuCacheTTL, cfg.OrderStatusCacheTTL)
	m := metrics.New()
	invoices := service.NewInvoiceGenerator(cfg.InvoicePrefix)

	inventoryService := service.NewInventoryService(store, bus, m)
	recipeService := service.NewRecipeService(store)
	productionService := service.NewProductionService(store, bus, caches, m)
	productService := service.NewProductService(store, bus, caches)
	salesService := service.NewSalesService(store, invoices, bus, caches, m)
	tableService := service.NewTableService(store, invoices, bus, caches, caches, m, cfg.PublicBaseURL)
	dashService := service.NewDashboardService(store)
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	ingredientHandler := handler.NewIngredientHandler(inventoryService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	productionHandler := handler.NewProductionHandler(productionService)
	productHandler := handler.NewProductHandler(productService)
	salesHandler := handler.NewSalesHandler(salesService)
	tableHandler := handler.NewTableHandler(tableService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(userService)

	publicLimit, err := newPublicLimiter(cfg, rdb)
	if err != nil {
		log.Fatalf("rate limiter: %v", err)
	}

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	app.Use(m.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", publicLimit, authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// Customer QR flow
	public := api.Group("/public", publicLimit)
	public.Get("/menu", productHandler.PublicMenu)
	public.Post("/tables/verify", tableHandler.VerifyPasscode)
	public.Post("/orders", tableHandler.PlaceOrder)
	public.Get("/orders/:id/status", tableHandler.GetOrderStatus)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(tokens, userRepo))
	can := middleware.RequirePrivilege

	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// Dashboard
	protected.Get("/dashboard/stats", can(model.PrivDashboardView), dashHandler.GetAdminStats)
	protected.Get("/dashboard/stock-movement", can(model.PrivDashboardView), dashHandler.GetStockMovement)

	// Ingredients & purchases
	protected.Get("/ingredients", can(model.PrivIngredientView), ingredientHandler.ListIngredients)
	protected.Get("/ingredients/:id", can(model.PrivIngredientView), ingredientHandler.GetIngredient)
	protected.Post("/ingredients", can(model.PrivIngredientManage), ingredientHandler.CreateIngredient)
	protected.Put("/ingredients/:id", can(model.PrivIngredientManage), ingredientHandler.UpdateIngredient)
	protected.Post("/ingredients/:id/adjust", can(model.PrivIngredientManage), ingredientHandler.AdjustStock)
	protected.Get("/purchases", can(model.PrivPurchaseView), ingredientHandler.ListPurchases)
	protected.Post("/purchases", can(model.PrivPurchaseCreate), ingredientHandler.RecordPurchase)

	// Recipes
	protected.Get("/recipes", can(model.PrivRecipeView), recipeHandler.ListRecipes)
	protected.Get("/recipes/:id", can(model.PrivRecipeView), recipeHandler.GetRecipe)
	protected.Post("/recipes", can(model.PrivRecipeManage), recipeHandler.CreateRecipe)
	protected.Put("/recipes/:id", can(model.PrivRecipeManage), recipeHandler.UpdateRecipe)
	protected.Delete("/recipes/:id", can(model.PrivRecipeManage), recipeHandler.DeleteRecipe)

	// Production
	protected.Get("/production", can(model.PrivProductionView), productionHandler.ListBatches)
	protected.Post("/production", can(model.PrivProductionCreate), productionHandler.Produce)

	// Finished products
	protected.Get("/products", can(model.PrivProductView), productHandler.ListProducts)
	protected.Get("/products/:id", can(model.PrivProductView), productHandler.GetProduct)
	protected.Put("/products/:id", can(model.PrivProductManage), productHandler.UpdateDetails)
	protected.Put("/products/:id/price", can(model.PrivProductManage), productHandler.SetSellingPrice)
	protected.Post("/products/:id/adjust", can(model.PrivProductManage), productHandler.AdjustStock)

	// Point of sale
	protected.Post("/sales/checkout", can(model.PrivSaleCreate), salesHandler.Checkout)
	protected.Get("/sales", can(model.PrivSaleView), salesHandler.ListSales)
	protected.Get("/sales/:id", can(model.PrivSaleView), salesHandler.GetSale)

	// Tables & kitchen orders
	protected.Get("/tables", can(model.PrivTableView), tableHandler.ListTables)
	protected.Post("/tables", can(model.PrivTableManage), tableHandler.AddTable)
	protected.Put("/tables/:id/active", can(model.PrivTableManage), tableHandler.SetTableActive)
	protected.Get("/orders/live", can(model.PrivOrderView), tableHandler.ListLiveOrders)
	protected.Put("/orders/:id/status", can(model.PrivOrderUpdate), tableHandler.UpdateOrderStatus)

	// User Management
	protected.Get("/users", can(model.PrivUserView), userHandler.GetUsers)
	protected.Get("/users/:id", can(model.PrivUserView), userHandler.GetUser)
	protected.Post("/users", can(model.PrivUserCreate), userHandler.CreateUser)
	protected.Put("/users/:id", can(model.PrivUserUpdate), userHandler.UpdateUser)
	protected.Delete("/users/:id", can(model.PrivUserDelete), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", can(model.PrivUserUpdatePrivilege), userHandler.UpdateUserPrivileges)

	// Roles & privileges
	protected.Get("/roles", roleHandler.GetRoles)
	protected.Get("/privileges", roleHandler.GetPrivileges)

	// WebSocket Route (staff only)
	app.Use("/ws", middleware.RequireSocketAuth(tokens, userRepo))
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	cancel()
	if rdb != nil {
		rdb.Close()
	}

	log.Println("Server exited")
}

// newPublicLimiter shares counters through redis when it is available so every instance sees the same budget.
func newPublicLimiter(cfg *config.Config, rdb *redis.Client) (fiber.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.PublicRateLimit)
	if err != nil {
		return nil, err
	}
	store := memory.NewStore()
	if rdb != nil {
		store, err = sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: "creamery:ratelimit"})
		if err != nil {
			return nil, err
		}
	}
	return middleware.RateLimit(store, rate), nil
}
