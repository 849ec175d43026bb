package create_checkout_session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/integrations/authservice"
	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
)

// UseCase use case создания checkout сессии
type UseCase struct {
	users    UserVerifier
	products ProductRepository
	payments PaymentsClient
	cfg      Config
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil
func NewUseCase(
	users UserVerifier,
	products ProductRepository,
	paymentsClient PaymentsClient,
	cfg Config,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if cfg.MaxItemQuantity <= 0 {
		cfg.MaxItemQuantity = domain.MaxItemQuantity
	}
	if cfg.Currency == "" {
		cfg.Currency = domain.DefaultCurrency
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &UseCase{
		users:    users,
		products: products,
		payments: paymentsClient,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute выполняет use case создания checkout сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCheckoutSession: user=%s, %d cart item(s)", req.UserID, len(req.Cart))

	// 1. Валидация
	userID, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateCheckoutSession: validation failed: %v", err)
		uc.observe(statusRejected)
		return nil, err
	}

	// 2. Пользователь должен существовать в сервисе авторизации
	if _, err := uc.users.GetUser(ctx, userID); err != nil {
		if errors.Is(err, authservice.ErrUserNotFound) {
			uc.logger.Warn("CreateCheckoutSession: user=%s not found", userID)
			uc.observe(statusRejected)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateCheckoutSession: failed to verify user=%s: %v", userID, err)
		uc.observe(statusFailed)
		return nil, fmt.Errorf("%w: verify user: %v", ErrInternal, err)
	}

	// 3. Товары и цены только из базы
	lines, err := uc.buildLines(ctx, mergeCart(req.Cart, uc.cfg.MaxItemQuantity))
	if err != nil {
		if errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrInsufficientStock) {
			uc.logger.Warn("CreateCheckoutSession: user=%s: %v", userID, err)
			uc.observe(statusRejected)
			return nil, err
		}
		uc.logger.Error("CreateCheckoutSession: failed to load products: %v", err)
		uc.observe(statusFailed)
		return nil, fmt.Errorf("%w: load products: %v", ErrInternal, err)
	}

	// 4. Сессия у провайдера
	session, err := uc.payments.CreateCheckoutSession(ctx, payments.CheckoutRequest{
		UserID:           userID.String(),
		Lines:            lines,
		Currency:         uc.cfg.Currency,
		SuccessURL:       uc.cfg.FrontendURL + "/profile",
		CancelURL:        uc.cfg.FrontendURL + "/cart",
		AllowedCountries: uc.cfg.AllowedCountries,
		IdempotencyKey:   uuid.NewString(),
	})
	if err != nil {
		uc.logger.Error("CreateCheckoutSession: provider error for user=%s: %v", userID, err)
		uc.observe(statusFailed)
		return nil, fmt.Errorf("%w: %v", ErrPaymentProvider, err)
	}

	uc.logger.Info("CreateCheckoutSession: session=%s created for user=%s", session.ID, userID)
	uc.observe(statusCreated)
	return &Response{SessionID: session.ID, URL: session.URL}, nil
}

func (uc *UseCase) buildLines(ctx context.Context, cart []CartItem) ([]payments.CheckoutLine, error) {
	ids := make([]int64, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.ID)
	}

	products, err := uc.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]payments.CheckoutLine, 0, len(cart))
	for _, item := range cart {
		product, ok := byID[item.ID]
		if !ok {
			return nil, fmt.Errorf("%w: id=%d", ErrProductNotFound, item.ID)
		}
		qty := domain.ClampQuantity(item.Quantity, uc.cfg.MaxItemQuantity)
		if !product.InStock(qty) {
			return nil, fmt.Errorf("%w: %q has %d left, requested %d", ErrInsufficientStock, product.Name, product.Quantity, qty)
		}
		lines = append(lines, payments.CheckoutLine{
			ProductID:   product.ID,
			Name:        product.Name,
			Description: product.Description,
			Image:       product.Image,
			UnitAmount:  product.UnitAmountCents(),
			Quantity:    int64(qty),
		})
	}
	return lines, nil
}

func (uc *UseCase) observe(status string) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ObserveCheckout(status)
}
