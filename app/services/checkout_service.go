package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/paddock-dev/paddock/app/models"
	"github.com/paddock-dev/paddock/app/repositories"
	"github.com/paddock-dev/paddock/pkg/logger"
	"github.com/paddock-dev/paddock/pkg/metrics"
	"github.com/paddock-dev/paddock/pkg/validate"
)

// CheckoutService owns the purchase flow.
type CheckoutService struct {
	db     *gorm.DB
	horses *repositories.HorseRepository
	orders *repositories.OrderRepository
	users  *repositories.UserRepository
}

func NewCheckoutService(db *gorm.DB, horses *repositories.HorseRepository, orders *repositories.OrderRepository, users *repositories.UserRepository) *CheckoutService {
	return &CheckoutService{db: db, horses: horses, orders: orders, users: users}
}

// CheckoutForm carries the shipping and contact details.
type CheckoutForm struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Address  string `json:"address" validate:"required,max=500"`
	Phone    string `json:"phone" validate:"nullable,max=50"`
}

// Checkout purchases a listing. Order creation and the AVAILABLE→SOLD flip
// commit in one transaction: either both happen or neither does. When two
// checkouts race past the status check, the unique index on orders.horse_id
// rejects the loser and it reports the listing as unavailable.
func (s *CheckoutService) Checkout(ctx context.Context, buyerID, horseID uint, form CheckoutForm) (models.Order, error) {
	if errs := validate.Struct(&form); validate.HasErrors(errs) {
		return models.Order{}, &ValidationError{Fields: errs}
	}

	var order models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		horses := s.horses.WithTx(tx)
		orders := s.orders.WithTx(tx)

		horse, err := horses.FindByID(horseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if horse.Status != models.HorseAvailable {
			return ErrListingUnavailable
		}
		if horse.SellerID != nil && *horse.SellerID == buyerID {
			return ErrSelfPurchase
		}

		order = models.Order{
			BuyerID:         buyerID,
			HorseID:         horse.ID,
			PriceAtPurchase: horse.Price,
			FullName:        form.FullName,
			Address:         form.Address,
			Phone:           form.Phone,
			Status:          models.OrderPaid,
		}
		if err := orders.Create(&order); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrListingUnavailable
			}
			return err
		}

		horse.Status = models.HorseSold
		return horses.Save(&horse)
	})
	if err != nil {
		// Only domain conflicts count as rejections; lookup misses and
		// infrastructure errors would skew the metric.
		if errors.Is(err, ErrListingUnavailable) || errors.Is(err, ErrSelfPurchase) {
			metrics.Checkouts.WithLabelValues("rejected").Inc()
		}
		return models.Order{}, err
	}

	metrics.Checkouts.WithLabelValues("completed").Inc()
	logger.WithCtx(ctx).Info("checkout completed",
		"order_id", order.ID, "horse_id", horseID, "buyer_id", buyerID,
		"price", order.PriceAtPurchase,
	)
	return order, nil
}

// ListMyOrders returns the buyer's orders, newest first.
func (s *CheckoutService) ListMyOrders(ctx context.Context, buyerID uint) ([]models.Order, error) {
	return s.orders.ListByBuyer(buyerID)
}

// Get returns one order to its buyer or an admin.
func (s *CheckoutService) Get(ctx context.Context, actorID, orderID uint) (models.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	if order.BuyerID != actorID {
		actor, err := s.users.FindByID(actorID)
		if err != nil || actor.Role != models.RoleAdmin {
			return models.Order{}, ErrForbidden
		}
	}

	return order, nil
}
