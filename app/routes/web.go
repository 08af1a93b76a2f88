package routes

import (
	"github.com/paddock-dev/paddock/app/controllers"
	"github.com/paddock-dev/paddock/pkg/middleware"
	"github.com/paddock-dev/paddock/pkg/router"
)

// Controllers carries every controller the web surface mounts.
type Controllers struct {
	Auth     *controllers.AuthController
	Listings *controllers.ListingController
	Checkout *controllers.CheckoutController
}

// Register mounts the marketplace routes. Authentication state is resolved
// upstream by middleware.Authenticate; the groups below only enforce it.
func Register(r *router.Router, c Controllers) {
	r.Get("/", "listings.index", c.Listings.Index)
	r.Get("/horse/{id}", "listings.show", c.Listings.Show)

	r.Post("/register", "auth.register", c.Auth.Register)
	r.Post("/login", "auth.login", c.Auth.Login)
	r.Get("/logout", "auth.logout", c.Auth.Logout, middleware.RequireUser)

	seller := r.Group("", middleware.RequireSeller)
	seller.Get("/sell", "listings.new", c.Listings.New)
	seller.Post("/sell", "listings.create", c.Listings.Create)
	seller.Get("/my-listings", "listings.mine", c.Listings.MyListings)

	user := r.Group("", middleware.RequireUser)
	user.Get("/edit/{id}", "listings.edit", c.Listings.Edit)
	user.Post("/edit/{id}", "listings.update", c.Listings.Update)
	user.Post("/delete/{id}", "listings.delete", c.Listings.Delete)
	user.Get("/checkout/{id}", "checkout.summary", c.Checkout.Summary)
	user.Post("/checkout/{id}", "checkout.purchase", c.Checkout.Checkout)
	user.Get("/my-orders", "checkout.orders", c.Checkout.MyOrders)
	user.Get("/order/{id}", "checkout.order", c.Checkout.Show)
}
