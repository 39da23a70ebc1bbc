package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/senkudev/otaku_shop/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	CartHandler     *CartHTTP
	WishlistHandler *WishlistHTTP
	PurchaseHandler *PurchaseHTTP
	ProductHandler  *ProductHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = HTTPErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := authmw.New(d.JWTSecret)

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/social", d.AuthHandler.FederatedLogin)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/forgot-password", d.AuthHandler.ForgotPassword)
	auth.POST("/reset-password", d.AuthHandler.ResetPassword)
	auth.POST("/verify-email", d.AuthHandler.VerifyEmail)
	auth.GET("/verify", d.AuthHandler.VerifyEmail)
	auth.POST("/logout", d.AuthHandler.Logout, mw.RequireAuth)

	cart := v1.Group("/cart", mw.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddItem)
	cart.PUT("/update", d.CartHandler.UpdateQuantity)
	cart.DELETE("/remove/:itemId", d.CartHandler.RemoveItem)
	cart.DELETE("/clear", d.CartHandler.Clear)

	wishlist := v1.Group("/wishlist", mw.RequireAuth)
	wishlist.GET("", d.WishlistHandler.Get)
	wishlist.POST("/add", d.WishlistHandler.AddItem)
	wishlist.DELETE("/remove/:productId", d.WishlistHandler.RemoveItem)
	wishlist.DELETE("/clear", d.WishlistHandler.Clear)
	wishlist.GET("/check/:productId", d.WishlistHandler.Contains)

	purchases := v1.Group("/purchases", mw.RequireAuth)
	purchases.POST("", d.PurchaseHandler.Create)
	purchases.GET("", d.PurchaseHandler.List)
	purchases.GET("/admin/all", d.PurchaseHandler.ListAll, mw.RequireAdmin)
	purchases.GET("/:id", d.PurchaseHandler.Get)
	purchases.PUT("/:id/status", d.PurchaseHandler.UpdateStatus)

	products := v1.Group("/products")
	products.GET("", d.ProductHandler.List)
	products.GET("/:id", d.ProductHandler.Get)

	admin := v1.Group("/admin", mw.RequireAdmin)
	admin.POST("/products", d.ProductHandler.Create)
	admin.PUT("/products/:id", d.ProductHandler.Update)
	admin.DELETE("/products/:id", d.ProductHandler.Delete)
}
