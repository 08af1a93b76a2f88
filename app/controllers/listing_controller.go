package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/paddock-dev/paddock/app/services"
	"github.com/paddock-dev/paddock/pkg/middleware"
	"github.com/paddock-dev/paddock/pkg/response"
)

type ListingController struct {
	service *services.ListingService
}

func NewListingController(service *services.ListingService) *ListingController {
	return &ListingController{service: service}
}

// Index handles GET / — the public marketplace, AVAILABLE listings only.
func (c *ListingController) Index(w http.ResponseWriter, r *http.Request) {
	horses, err := c.service.ListAvailable(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, horses)
}

// Show handles GET /horse/{id} — public listing detail.
func (c *ListingController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	horse, err := c.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, horse)
}

// New handles GET /sell — the create-listing context for the seller UI.
func (c *ListingController) New(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())
	response.Success(w, map[string]interface{}{
		"seller_id": userID,
		"required":  []string{"name", "breed", "age", "price"},
		"optional":  []string{"description", "location", "image"},
	})
}

// Create handles POST /sell. The body is a multipart form with an optional
// image part.
func (c *ListingController) Create(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed form body")
		return
	}

	userID, _ := middleware.UserIDFromCtx(r.Context())

	horse, err := c.service.Create(r.Context(), userID, listingForm(r), imageFile(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, horse)
}

// MyListings handles GET /my-listings — the seller's management view.
func (c *ListingController) MyListings(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r.Context())

	horses, err := c.service.ListBySeller(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, horses)
}

// Edit handles GET /edit/{id} — the listing as the owner may edit it.
func (c *ListingController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	userID, _ := middleware.UserIDFromCtx(r.Context())

	horse, err := c.service.GetForEdit(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, horse)
}

// Update handles POST /edit/{id}.
func (c *ListingController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}
	if err := parseForm(r); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed form body")
		return
	}

	userID, _ := middleware.UserIDFromCtx(r.Context())

	horse, err := c.service.Update(r.Context(), userID, id, listingForm(r), imageFile(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, horse)
}

// Delete handles POST /delete/{id}.
func (c *ListingController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		response.NotFound(w)
		return
	}

	userID, _ := middleware.UserIDFromCtx(r.Context())

	if err := c.service.Delete(r.Context(), userID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, map[string]string{"message": "listing deleted"})
}

func listingForm(r *http.Request) services.ListingForm {
	return services.ListingForm{
		Name:        r.FormValue("name"),
		Breed:       r.FormValue("breed"),
		Age:         r.FormValue("age"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
	}
}

// imageFile returns the optional image part, or nil when absent.
func imageFile(r *http.Request) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if files := r.MultipartForm.File["image"]; len(files) > 0 {
		return files[0]
	}
	return nil
}
