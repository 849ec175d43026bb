package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

const (
	// EventCheckoutCompleted тип события успешной оплаты
	EventCheckoutCompleted = string(stripe.EventTypeCheckoutSessionCompleted)

	productIDMetadataKey = "product_id"
	lineItemsLimit       = 100
)

// Client обёртка над stripe API клиентом. Ключ передаётся явно, глобальный stripe.Key не используется
type Client struct {
	api           *client.API
	webhookSecret string
	tolerance     time.Duration
}

// NewClient создает клиента с production backend
func NewClient(secretKey, webhookSecret string, tolerance time.Duration) *Client {
	return NewClientWithBackends(secretKey, webhookSecret, tolerance, nil)
}

// NewClientWithBackends создает клиента с явно переданными backend (используется в тестах)
func NewClientWithBackends(secretKey, webhookSecret string, tolerance time.Duration, backends *stripe.Backends) *Client {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &Client{
		api:           client.New(secretKey, backends),
		webhookSecret: webhookSecret,
		tolerance:     tolerance,
	}
}

// CreateCheckoutSession создает hosted checkout сессию для оплаты картой
func (c *Client) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	countries := make([]*string, 0, len(req.AllowedCountries))
	for _, cc := range req.AllowedCountries {
		countries = append(countries, stripe.String(cc))
	}

	lines := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Lines))
	for _, l := range req.Lines {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(l.Name),
		}
		if l.Description != "" {
			productData.Description = stripe.String(l.Description)
		}
		if l.Image != "" {
			productData.Images = []*string{stripe.String(l.Image)}
		}
		productData.AddMetadata(productIDMetadataKey, strconv.FormatInt(l.ProductID, 10))

		lines = append(lines, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(req.Currency),
				UnitAmount:  stripe.Int64(l.UnitAmount),
				ProductData: productData,
			},
			Quantity: stripe.Int64(l.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lines,
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		ClientReferenceID:  stripe.String(req.UserID),
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: countries,
		},
		AutomaticTax: &stripe.CheckoutSessionAutomaticTaxParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("user_id", req.UserID)
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	session, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create checkout session: %v", ErrProvider, err)
	}
	return &CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

// ListLineItems возвращает позиции сессии вместе с product_id из metadata товара
func (c *Client) ListLineItems(ctx context.Context, sessionID string) ([]PurchasedItem, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(lineItemsLimit)
	params.AddExpand("data.price.product")

	items := make([]PurchasedItem, 0)
	it := c.api.CheckoutSessions.ListLineItems(params)
	for it.Next() {
		li := it.LineItem()
		item := PurchasedItem{
			Name:     li.Description,
			Quantity: li.Quantity,
		}
		if li.Price != nil {
			item.UnitAmount = li.Price.UnitAmount
			if li.Price.Product != nil {
				if li.Price.Product.Name != "" {
					item.Name = li.Price.Product.Name
				}
				if raw, ok := li.Price.Product.Metadata[productIDMetadataKey]; ok {
					if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
						item.ProductID = &id
					}
				}
			}
		}
		items = append(items, item)
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("%w: list line items for %s: %v", ErrProvider, sessionID, err)
	}
	return items, nil
}

// ParseEvent проверяет подпись и разбирает событие
func (c *Client) ParseEvent(payload []byte, signatureHeader string) (*Event, error) {
	evt, err := webhook.ConstructEventWithOptions(payload, signatureHeader, c.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                c.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &Event{ID: evt.ID, Type: string(evt.Type)}
	if out.Type != EventCheckoutCompleted {
		return out, nil
	}
	if evt.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", ErrInvalidPayload, evt.ID)
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(evt.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("%w: decode checkout session: %v", ErrInvalidPayload, err)
	}
	out.Session = completedFromStripe(&session)
	return out, nil
}

func completedFromStripe(s *stripe.CheckoutSession) *CompletedSession {
	cs := &CompletedSession{
		ID:                s.ID,
		ClientReferenceID: s.ClientReferenceID,
		AmountTotal:       s.AmountTotal,
	}
	if s.CustomerDetails != nil {
		cs.CustomerName = s.CustomerDetails.Name
		cs.CustomerPhone = s.CustomerDetails.Phone
	}
	if s.ShippingDetails != nil && s.ShippingDetails.Address != nil {
		cs.ShippingAddress = addressFromStripe(s.ShippingDetails.Address)
		if cs.CustomerName == "" {
			cs.CustomerName = s.ShippingDetails.Name
		}
	} else if s.CustomerDetails != nil && s.CustomerDetails.Address != nil {
		cs.ShippingAddress = addressFromStripe(s.CustomerDetails.Address)
	}
	return cs
}

func addressFromStripe(a *stripe.Address) *domain.Address {
	return &domain.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}
