package services

import (
	"fmt"
	"log"

	"userstore/internal/models"
	"userstore/internal/repositories"
	"userstore/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService handles business logic related to orders.
type OrderService struct {
	db          *gorm.DB
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	addressRepo repositories.AddressRepository
	productRepo repositories.ProductRepository
	mqClient    *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, in which
// case order events are not published.
func NewOrderService(
	db *gorm.DB,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	addressRepo repositories.AddressRepository,
	productRepo repositories.ProductRepository,
	mqClient *rabbitmq.Client,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		addressRepo: addressRepo,
		productRepo: productRepo,
		mqClient:    mqClient,
	}
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// ListOrdersForUser returns the orders placed by the given user.
func (s *OrderService) ListOrdersForUser(userID string) ([]models.Order, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListForUser(userID)
}

// CreateOrder validates the referenced user, delivery address and products,
// computes the total from current product prices, and persists the order with
// its items in one transaction. On success an order.created event is
// published best-effort.
func (s *OrderService) CreateOrder(order *models.Order) (*models.Order, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.WithTx(tx).GetByID(order.UserID); err != nil {
			return err
		}
		if _, err := s.addressRepo.WithTx(tx).GetByID(order.DeliveryAddressID); err != nil {
			return err
		}

		products := s.productRepo.WithTx(tx)
		total := decimal.Zero
		for _, item := range order.Items {
			product, err := products.GetByID(item.ProductID)
			if err != nil {
				return err
			}
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order.TotalAmount = total
		order.Status = models.OrderStatusPending
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"orderID": order.ID,
			"userID":  order.UserID,
			"status":  order.Status,
			"total":   order.TotalAmount.String(),
		}
		if err := s.mqClient.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
		}
	}

	return order, nil
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status: %s", status)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).UpdateStatus(id, status)
	})
}
