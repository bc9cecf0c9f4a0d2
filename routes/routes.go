package routes

import (
	"github.com/YodHeVauHe/ShopWithKylie/controllers"
	"github.com/YodHeVauHe/ShopWithKylie/middleware"
	"github.com/gin-gonic/gin"
)

// Register sets up all storefront and admin routes.
func Register(
	r *gin.Engine,
	pc *controllers.ProductController,
	dc *controllers.DiscountController,
	cc *controllers.CartController,
	oc *controllers.OrderController,
	dash *controllers.DashboardController,
) {
	// Catalog browsing is public.
	productRoutes := r.Group("/products")
	productRoutes.GET("", pc.ListProducts)
	productRoutes.GET("/:id", pc.GetProduct)

	// Everything below needs an authenticated caller.
	authed := r.Group("")
	authed.Use(middleware.AuthMiddleware())

	cartRoutes := authed.Group("/cart")
	cartRoutes.GET("", cc.GetCart)
	cartRoutes.DELETE("", cc.ClearCart)
	cartRoutes.POST("/items", cc.AddItem)
	cartRoutes.PATCH("/items/:productId", cc.UpdateItem)
	cartRoutes.DELETE("/items/:productId", cc.RemoveItem)

	authed.POST("/discounts/validate", dc.ValidateCode)

	orderRoutes := authed.Group("/orders")
	orderRoutes.POST("/checkout", oc.Checkout)
	orderRoutes.GET("", oc.ListOrders)
	orderRoutes.GET("/:id", oc.GetOrder)

	// Admin surface.
	admin := authed.Group("/admin")
	admin.Use(middleware.AdminOnly())

	admin.POST("/products", pc.CreateProduct)
	admin.PATCH("/products/:id", pc.UpdateProduct)
	admin.DELETE("/products/:id", pc.DeleteProduct)
	admin.POST("/products/discounts", pc.ApplyBulkDiscount)
	admin.DELETE("/products/discounts", pc.RemoveBulkDiscount)

	admin.POST("/discounts", dc.CreateCode)
	admin.GET("/discounts", dc.ListCodes)
	admin.DELETE("/discounts/:id", dc.DeactivateCode)

	admin.GET("/orders", oc.ListAllOrders)
	admin.GET("/dashboard", dash.GetMetrics)
	admin.GET("/dashboard/revenue", dash.GetRevenue)
}
