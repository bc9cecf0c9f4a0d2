package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YodHeVauHe/ShopWithKylie/cache"
	"github.com/YodHeVauHe/ShopWithKylie/controllers"
	"github.com/YodHeVauHe/ShopWithKylie/database"
	"github.com/YodHeVauHe/ShopWithKylie/middleware"
	"github.com/YodHeVauHe/ShopWithKylie/models"
	"github.com/YodHeVauHe/ShopWithKylie/repository"
	"github.com/YodHeVauHe/ShopWithKylie/routes"
	"github.com/YodHeVauHe/ShopWithKylie/services"

	"github.com/gin-gonic/gin"
	aws_pkg "github.com/YodHeVauHe/ShopWithKylie/pkg/aws"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// --- Databases ---
	db, err := database.ConnectPostgres(logger, cfg.Postgres,
		&models.Product{},
		&models.DiscountCode{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Redis connection failed", zap.Error(err))
	}

	// --- AWS setup ---
	var snsPublisher aws_pkg.SNSPublisher = aws_pkg.NoopPublisher{}
	if cfg.OrderSNSTopicARN != "" {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			logger.Fatal("Failed to load AWS config", zap.Error(err))
		}
		snsPublisher = aws_pkg.NewSNSClient(awsCfg)
	}

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, cfg.RateLimitBurst))

	// CloudWatch HTTP metrics middleware
	var metricsClient *aws_pkg.MetricsClient
	r.Use(func(c *gin.Context) {
		if metricsClient == nil || !metricsClient.IsEnabled() {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		go func(path, method string, status int, dur time.Duration) {
			mctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			dims := map[string]string{"Service": "shopwithkylie", "Method": method, "Path": path}
			_ = metricsClient.RecordCount(mctx, aws_pkg.MetricHTTPRequests, dims)
			_ = metricsClient.RecordLatency(mctx, aws_pkg.MetricHTTPLatency, dur, dims)
			if status >= 400 {
				_ = metricsClient.RecordCount(mctx, aws_pkg.MetricHTTPErrors, dims)
			}
		}(c.Request.URL.Path, c.Request.Method, c.Writer.Status(), time.Since(start))
	})

	// Structured HTTP request logging
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("body_size", c.Writer.Size()),
		}
		switch {
		case status >= 500:
			logger.Error("http_request", fields...)
		case status >= 400:
			logger.Warn("http_request", fields...)
		default:
			logger.Info("http_request", fields...)
		}
	})

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	productRepo := repository.NewGormProductRepository(db)
	discountRepo := repository.NewGormDiscountRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	cartStore := repository.NewCartRepository(redisClient, 7*24*time.Hour)
	checkoutStore := repository.NewGormCheckoutStore(db)
	productCache := cache.NewProductCache(redisClient, logger)

	productService := services.NewProductService(productRepo, productCache, logger)
	discountService := services.NewDiscountService(discountRepo, logger)
	cartService := services.NewCartService(cartStore, productRepo, logger)
	checkoutService := services.NewCheckoutService(cartStore, productRepo, discountService, checkoutStore, snsPublisher, cfg.OrderSNSTopicARN, logger)
	orderService := services.NewOrderService(orderRepo, logger)
	metricsService := services.NewMetricsService(productRepo, orderRepo, logger)

	routes.Register(r,
		controllers.NewProductController(productService),
		controllers.NewDiscountController(discountService, cartService),
		controllers.NewCartController(cartService),
		controllers.NewOrderController(checkoutService, orderService),
		controllers.NewDashboardController(metricsService),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "shopwithkylie"})
	})

	// --- CloudWatch metrics (non-fatal) ---
	metricsClient, err = aws_pkg.NewMetricsClient(context.Background())
	if err != nil {
		logger.Warn("CloudWatch metrics client init failed (non-fatal)", zap.Error(err))
	}

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("ShopWithKylie backend started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		logger.Error("Redis close error", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	log.Println("ShopWithKylie backend stopped gracefully")
}
