package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-StudioService/internal/service/orders/models"
)

// Service сервис заказов магазина
type Service struct {
	orderRepo   OrderRepository
	profileRepo ProfileRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, profileRepo ProfileRepository, logger Logger) *Service {
	return &Service{
		orderRepo:   orderRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// ListForUser заказы пользователя
func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) (*models.OrderListResponse, error) {
	orders, err := s.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("ListForUser: %d orders for user=%s", len(orders), userID)
	return models.FromDomainOrders(orders), nil
}

// ListAll все заказы, только для администратора
func (s *Service) ListAll(ctx context.Context, userID uuid.UUID) (*models.OrderListResponse, error) {
	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil && !errors.Is(err, profileRepo.ErrProfileNotFound) {
		s.logger.Error("ListAll: failed to load profile user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: ListAll - load profile: %v", ErrInternal, err)
	}
	if !profile.IsAdmin() {
		s.logger.Warn("ListAll: user=%s is not an admin", userID)
		return nil, ErrAccessDenied
	}

	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("ListAll: %d orders", len(orders))
	return models.FromDomainOrders(orders), nil
}
