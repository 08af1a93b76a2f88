package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"

	"gorm.io/gorm"

	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/app/repositories"
	"github.com/paddock-dev/paddock/pkg/logger"
	"github.com/paddock-dev/paddock/pkg/metrics"
	"github.com/paddock-dev/paddock/pkg/validate"
)

// ListingService owns the horse-listing CRUD and its ownership rules.
type ListingService struct {
	horses *repositories.HorseRepository
	users  *repositories.UserRepository
	media  *MediaService
}

func NewListingService(horses *repositories.HorseRepository, users *repositories.UserRepository, media *MediaService) *ListingService {
	return &ListingService{horses: horses, users: users, media: media}
}

// ListingForm carries the raw form fields. Age and price arrive as strings
// and must parse as integer/decimal, otherwise the whole request is a
// validation failure.
type ListingForm struct {
	Name        string `json:"name" validate:"required,max=100"`
	Breed       string `json:"breed" validate:"required,max=100"`
	Age         string `json:"age" validate:"required,integer"`
	Price       string `json:"price" validate:"required,numeric"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

func (f *ListingForm) parse() (age int, price float64, err error) {
	if errs := validate.Struct(f); validate.HasErrors(errs) {
		return 0, 0, &ValidationError{Fields: errs}
	}

	age64, err := strconv.ParseInt(f.Age, 10, 64)
	if err != nil {
		return 0, 0, &ValidationError{Fields: map[string]string{"age": "The age field must be an integer."}}
	}
	price, err = strconv.ParseFloat(f.Price, 64)
	if err != nil {
		return 0, 0, &ValidationError{Fields: map[string]string{"price": "The price field must be a number."}}
	}
	if age64 < 0 || price < 0 {
		return 0, 0, &ValidationError{Fields: map[string]string{"age": "The age and price fields must not be negative."}}
	}
	return int(age64), price, nil
}

// Create validates the form, uploads the optional image and persists a new
// AVAILABLE listing owned by the calling seller. A failed image upload does
// not fail the listing; it is simply stored without media.
func (s *ListingService) Create(ctx context.Context, sellerID uint, form ListingForm, image *multipart.FileHeader) (models.Horse, error) {
	age, price, err := form.parse()
	if err != nil {
		return models.Horse{}, err
	}

	horse := models.Horse{
		Name:        form.Name,
		Breed:       form.Breed,
		Age:         age,
		Price:       price,
		Description: form.Description,
		Location:    form.Location,
		Status:      models.HorseAvailable,
		SellerID:    &sellerID,
		ImageURL:    s.media.Upload(ctx, image),
	}

	if err := s.horses.Create(&horse); err != nil {
		return models.Horse{}, err
	}

	metrics.ListingsCreated.Inc()
	logger.WithCtx(ctx).Info("listing created", "horse_id", horse.ID, "seller_id", sellerID)
	return horse, nil
}

// ListAvailable returns the public marketplace view, newest first.
func (s *ListingService) ListAvailable(ctx context.Context) ([]models.Horse, error) {
	return s.horses.ListAvailable()
}

// Get returns one listing. Viewing needs no ownership.
func (s *ListingService) Get(ctx context.Context, id uint) (models.Horse, error) {
	horse, err := s.horses.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Horse{}, ErrNotFound
		}
		return models.Horse{}, err
	}
	return horse, nil
}

// GetForEdit returns one listing after the ownership check, for the edit view.
func (s *ListingService) GetForEdit(ctx context.Context, actorID, id uint) (models.Horse, error) {
	horse, err := s.Get(ctx, id)
	if err != nil {
		return models.Horse{}, err
	}
	if err := s.authorize(actorID, &horse); err != nil {
		return models.Horse{}, err
	}
	return horse, nil
}

// Update re-validates all fields and replaces the listing's content.
// Absent description/location clear the stored values. A newly supplied
// image replaces the stored URL only when its upload succeeds; on failure
// the old media is silently retained.
func (s *ListingService) Update(ctx context.Context, actorID, id uint, form ListingForm, image *multipart.FileHeader) (models.Horse, error) {
	horse, err := s.Get(ctx, id)
	if err != nil {
		return models.Horse{}, err
	}
	if err := s.authorize(actorID, &horse); err != nil {
		return models.Horse{}, err
	}

	age, price, err := form.parse()
	if err != nil {
		return models.Horse{}, err
	}

	horse.Name = form.Name
	horse.Breed = form.Breed
	horse.Age = age
	horse.Price = price
	horse.Description = form.Description
	horse.Location = form.Location

	if image != nil && image.Filename != "" {
		if url := s.media.Upload(ctx, image); url != "" {
			horse.ImageURL = url
		}
	}

	if err := s.horses.Save(&horse); err != nil {
		return models.Horse{}, err
	}

	logger.WithCtx(ctx).Info("listing updated", "horse_id", horse.ID, "actor_id", actorID)
	return horse, nil
}

// Delete permanently removes an AVAILABLE listing. SOLD listings keep their
// order history and cannot be deleted.
func (s *ListingService) Delete(ctx context.Context, actorID, id uint) error {
	horse, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actorID, &horse); err != nil {
		return err
	}
	if horse.Status == models.HorseSold {
		return ErrListingSold
	}

	if err := s.horses.Delete(&horse); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info("listing deleted", "horse_id", id, "actor_id", actorID)
	return nil
}

// ListBySeller returns the seller's management view, newest first.
func (s *ListingService) ListBySeller(ctx context.Context, sellerID uint) ([]models.Horse, error) {
	return s.horses.ListBySeller(sellerID)
}

// authorize resolves the actor from the database and applies the ownership
// predicate, so a stale token cannot outlive a role change.
func (s *ListingService) authorize(actorID uint, horse *models.Horse) error {
	actor, err := s.users.FindByID(actorID)
	if err != nil {
		return ErrForbidden
	}
	if !actor.CanEditListing(horse) {
		return ErrForbidden
	}
	return nil
}
