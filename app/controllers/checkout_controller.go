package controllers

import (
	"net/http"

	"github.com/paddock-dev/paddock/app/services"
	"github.com/paddock-dev/paddock/pkg/middleware"
	"github.com/paddock-dev/paddock/pkg/response"
)

type CheckoutController struct {
	listings *services.ListingService
	service  *services.CheckoutService
}

func NewCheckoutController(listings *services.ListingService, service *services.CheckoutService) *CheckoutController {
	return &CheckoutController{listings: listings, service: service}
}

// Summary handles GET /checkout/{id} — the purchase confirmation view.
func (c *CheckoutController) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	horse, err := c.listings.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"horse":    horse,
		"required": []string{"full_name", "address"},
		"optional": []string{"phone"},
	})
}

// Checkout handles POST /checkout/{id}.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}
	if err := parseForm(r); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed form body")
		return
	}

	buyerID, _ := middleware.UserIDFromCtx(r.Context())

	form := services.CheckoutForm{
		FullName: r.FormValue("full_name"),
		Address:  r.FormValue("address"),
		Phone:    r.FormValue("phone"),
	}

	order, err := c.service.Checkout(r.Context(), buyerID, id, form)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, order)
}

// MyOrders handles GET /my-orders.
func (c *CheckoutController) MyOrders(w http.ResponseWriter, r *http.Request) {
	buyerID, _ := middleware.UserIDFromCtx(r.Context())

	orders, err := c.service.ListMyOrders(r.Context(), buyerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, orders)
}

// Show handles GET /order/{id} — visible to the order's buyer or an admin.
func (c *CheckoutController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	userID, _ := middleware.UserIDFromCtx(r.Context())

	order, err := c.service.Get(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, order)
}
