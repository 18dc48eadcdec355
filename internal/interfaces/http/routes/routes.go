// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/domain/user"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/handlers"
	"github.com/stephenombuya/Velixa/internal/interfaces/http/middleware"
)

// Services holds the services one process exposes; nil entries are not routed
type Services struct {
	Users         handlers.UserService
	Products      handlers.ProductService
	Carts         handlers.CartService
	Orders        handlers.OrderService
	Payments      handlers.PaymentService
	Inventory     handlers.InventoryService
	Reviews       handlers.ReviewService
	Notifications handlers.NotificationService
}

// SetupRoutes registers the routes of every configured service.
// protect guards every route except registration and login; nil leaves them open.
func SetupRoutes(rg *gin.RouterGroup, services Services, protect gin.HandlerFunc) {
	if services.Users != nil {
		SetupUserRoutes(rg, services.Users, protect)
	}
	if services.Products != nil {
		SetupProductRoutes(guarded(rg, protect), services.Products)
	}
	if services.Carts != nil {
		SetupCartRoutes(guarded(rg, protect), services.Carts)
	}
	if services.Orders != nil {
		SetupOrderRoutes(guarded(rg, protect), services.Orders)
	}
	if services.Payments != nil {
		SetupPaymentRoutes(guarded(rg, protect), services.Payments)
	}
	if services.Inventory != nil {
		SetupInventoryRoutes(guarded(rg, protect), services.Inventory)
	}
	if services.Reviews != nil {
		SetupReviewRoutes(guarded(rg, protect), services.Reviews)
	}
	if services.Notifications != nil {
		SetupNotificationRoutes(guarded(rg, protect), services.Notifications)
	}
}

func guarded(rg *gin.RouterGroup, protect gin.HandlerFunc) *gin.RouterGroup {
	if protect == nil {
		return rg
	}
	return rg.Group("", protect)
}

// SetupUserRoutes sets up user related routes
func SetupUserRoutes(rg *gin.RouterGroup, userService handlers.UserService, protect gin.HandlerFunc) {
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)

	users := rg.Group("/users")
	{
		// Public endpoints
		users.POST("/register", authHandler.Register)
		users.POST("/login", authHandler.Login)

		protected := guarded(users, protect)
		protected.GET("/:id", userHandler.GetUser)
		protected.PUT("/:id", userHandler.UpdateUser)

		// Listing and deleting accounts need the admin role once auth is on
		admin := protected
		if protect != nil {
			admin = protected.Group("", middleware.RequireRole(user.RoleAdmin))
		}
		admin.GET("", userHandler.ListUsers)
		admin.DELETE("/:id", userHandler.DeleteUser)
	}
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, productService handlers.ProductService) {
	productHandler := handlers.NewProductHandler(productService)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.POST("", productHandler.CreateProduct)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/category/:category", productHandler.GetProductsByCategory)
		products.GET("/:id", productHandler.GetProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, cartService handlers.CartService) {
	cartHandler := handlers.NewCartHandler(cartService)

	carts := rg.Group("/carts/:userId")
	{
		carts.GET("", cartHandler.GetCart)
		carts.POST("", cartHandler.CreateCart)
		carts.DELETE("", cartHandler.ClearCart)
		carts.POST("/items", cartHandler.AddItem)
		carts.PUT("/items/:productId", cartHandler.UpdateItem)
		carts.DELETE("/items/:productId", cartHandler.RemoveItem)
	}
}

// SetupOrderRoutes sets up order related routes
func SetupOrderRoutes(rg *gin.RouterGroup, orderService handlers.OrderService) {
	orderHandler := handlers.NewOrderHandler(orderService)
	invoiceHandler := handlers.NewInvoiceHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.GET("", orderHandler.GetOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/user/:userId", orderHandler.GetUserOrders)
		orders.GET("/status/:status", orderHandler.GetOrdersByStatus)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PUT("/:id", orderHandler.UpdateOrder)
		orders.DELETE("/:id", orderHandler.DeleteOrder)
		orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		orders.PUT("/:id/payment/:paymentId", orderHandler.AttachPayment)
		orders.GET("/:id/invoice", invoiceHandler.DownloadInvoice)
	}
}

// SetupPaymentRoutes sets up payment related routes
func SetupPaymentRoutes(rg *gin.RouterGroup, paymentService handlers.PaymentService) {
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.GET("", paymentHandler.GetPayments)
		payments.POST("", paymentHandler.ProcessPayment)
		payments.GET("/order/:orderId", paymentHandler.GetOrderPayment)
		payments.GET("/user/:userId", paymentHandler.GetUserPayments)
		payments.GET("/status/:status", paymentHandler.GetPaymentsByStatus)
		payments.GET("/:id", paymentHandler.GetPayment)
		payments.PUT("/:id", paymentHandler.UpdatePaymentStatus)
	}
}

// SetupInventoryRoutes sets up inventory related routes
func SetupInventoryRoutes(rg *gin.RouterGroup, inventoryService handlers.InventoryService) {
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)

	inventory := rg.Group("/inventory")
	{
		inventory.POST("", inventoryHandler.CreateInventory)
		inventory.GET("/low-stock", inventoryHandler.GetLowStock)
		inventory.GET("/location/:location", inventoryHandler.GetByLocation)
		inventory.GET("/:productId", inventoryHandler.GetInventory)
		inventory.PUT("/:productId", inventoryHandler.ReplaceInventory)
		inventory.DELETE("/:productId", inventoryHandler.DeleteInventory)
		inventory.PUT("/:productId/:quantity", inventoryHandler.UpdateQuantity)
		inventory.GET("/:productId/available/:quantity", inventoryHandler.CheckAvailability)
	}
}

// SetupReviewRoutes sets up review related routes
func SetupReviewRoutes(rg *gin.RouterGroup, reviewService handlers.ReviewService) {
	reviewHandler := handlers.NewReviewHandler(reviewService)

	reviews := rg.Group("/reviews")
	{
		reviews.POST("", reviewHandler.CreateReview)
		reviews.GET("/product/:productId", reviewHandler.GetProductReviews)
		reviews.GET("/:id", reviewHandler.GetReview)
		reviews.DELETE("/:id", reviewHandler.DeleteReview)
	}
}

// SetupNotificationRoutes sets up notification related routes
func SetupNotificationRoutes(rg *gin.RouterGroup, notificationService handlers.NotificationService) {
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.POST("", notificationHandler.CreateNotification)
		notifications.POST("/send", notificationHandler.SendNotification)
		notifications.POST("/send/:id", notificationHandler.SendExisting)
		notifications.POST("/order-confirmation", notificationHandler.SendOrderConfirmation)
		notifications.GET("/user/:userId", notificationHandler.GetUserNotifications)
		notifications.GET("/:id", notificationHandler.GetNotification)
	}
}
