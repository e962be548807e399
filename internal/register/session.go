package register

import (
	"context"
	"sync"
	"time"

	"github.com/pos2025/pos-backend/internal/cart"
	"github.com/pos2025/pos-backend/internal/checkout"
	"github.com/pos2025/pos-backend/pkg/enums"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/types"
)

// Session is one register's working state: the cart plus every selection
// the operator has made. A per-session mutex serializes all access, the
// Go rendition of the original's single event thread.
type Session struct {
	id string

	mu        sync.Mutex
	cart      *cart.Cart
	customer  *types.CustomerRef
	saleType  enums.SaleType
	payment   *types.PaymentMethod
	note      string
	schedule  types.Schedule
	orch      *checkout.Orchestrator
	lastOrder *checkout.Result
	lastSeen  time.Time

	decimals int
}

// ItemView is a cart row shaped for responses, prices rounded for display.
type ItemView struct {
	ItemID         string `json:"itemId"`
	ProductID      int64  `json:"productId"`
	VariationID    int64  `json:"variationId,omitempty"`
	Name           string `json:"name"`
	VariationLabel string `json:"variationLabel,omitempty"`
	UnitPrice      string `json:"unitPrice"`
	OriginalPrice  string `json:"originalPrice"`
	Quantity       int    `json:"quantity"`
	Subtotal       string `json:"subtotal"`
	SKU            string `json:"sku,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

// OrderView summarizes the most recent successful checkout.
type OrderView struct {
	ID           string                 `json:"id"`
	Number       int64                  `json:"number"`
	Status       enums.OrderStatus      `json:"status"`
	Total        string                 `json:"total"`
	SkippedItems []checkout.SkippedItem `json:"skippedItems,omitempty"`
}

// View is the full session snapshot served to clients.
type View struct {
	ID            string               `json:"id"`
	Items         []ItemView           `json:"items"`
	Total         string               `json:"total"`
	Customer      *types.CustomerRef   `json:"customer,omitempty"`
	SaleType      enums.SaleType       `json:"saleType"`
	PaymentMethod *types.PaymentMethod `json:"paymentMethod,omitempty"`
	Note          string               `json:"note,omitempty"`
	Schedule      types.Schedule       `json:"schedule"`
	Ready         bool                 `json:"ready"`
	CheckoutState enums.CheckoutState  `json:"checkoutState"`
	LastOrder     *OrderView           `json:"lastOrder,omitempty"`
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// View snapshots the session, including the derived readiness flag.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// AddItem adds or merges a cart row.
func (s *Session) AddItem(entry cart.ItemEntry) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.cart.AddItem(entry); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// SetQuantity updates a row's quantity; below one removes it.
func (s *Session) SetQuantity(itemID string, quantity int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(itemID, quantity)
	return s.viewLocked()
}

// SetPrice overrides a row's effective price.
func (s *Session) SetPrice(itemID, price string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.SetPrice(itemID, price); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// ResetPrice restores a row's catalog price.
func (s *Session) ResetPrice(itemID string) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.cart.ResetPrice(itemID); err != nil {
		return View{}, err
	}
	return s.viewLocked(), nil
}

// RemoveItem deletes a cart row.
func (s *Session) RemoveItem(itemID string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(itemID)
	return s.viewLocked()
}

// SetCustomer attaches a customer to the sale.
func (s *Session) SetCustomer(ref types.CustomerRef) (View, error) {
	if ref.IsGuest() {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "customer id must be positive; clear the customer for guest sales")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	customer := ref
	s.customer = &customer
	return s.viewLocked(), nil
}

// ClearCustomer reverts the sale to guest.
func (s *Session) ClearCustomer() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = nil
	return s.viewLocked()
}

// SetSaleType switches the sale type, carrying schedule fields for
// subscription sales and dropping them for everything else.
func (s *Session) SetSaleType(saleType enums.SaleType, schedule types.Schedule) (View, error) {
	if !saleType.IsValid() {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown sale type")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saleType = saleType
	if saleType.RequiresSchedule() {
		s.schedule = schedule
	} else {
		s.schedule = types.Schedule{}
	}
	return s.viewLocked(), nil
}

// SetPaymentMethod records the operator's gateway pick.
func (s *Session) SetPaymentMethod(method types.PaymentMethod) (View, error) {
	if method.ID == "" {
		return View{}, pkgerrors.New(pkgerrors.CodeValidation, "payment method id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	payment := method
	s.payment = &payment
	return s.viewLocked(), nil
}

// SetNote stores the customer note submitted with the order.
func (s *Session) SetNote(note string) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.note = note
	return s.viewLocked()
}

// Checkout submits the session through the orchestrator. On success all
// selection state resets for the next sale; on failure everything stays
// put so the operator can correct and retry.
func (s *Session) Checkout(ctx context.Context) (*checkout.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := checkout.Snapshot{
		Items:         s.cart.Items(),
		Customer:      s.customer,
		PaymentMethod: s.payment,
		SaleType:      s.saleType,
		Note:          s.note,
		Schedule:      s.schedule,
	}

	result, err := s.orch.Submit(ctx, snap)
	if err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.customer = nil
	s.saleType = enums.SaleTypeDirect
	s.schedule = types.Schedule{}
	s.note = ""
	s.lastOrder = result
	return result, nil
}

func (s *Session) viewLocked() View {
	items := s.cart.Items()
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{
			ItemID:         item.ItemID,
			ProductID:      item.ProductID,
			VariationID:    item.VariationID,
			Name:           item.Name,
			VariationLabel: item.VariationLabel,
			UnitPrice:      types.FormatAmount(item.UnitPriceEffective, s.decimals),
			OriginalPrice:  types.FormatAmount(item.UnitPriceOriginal, s.decimals),
			Quantity:       item.Quantity,
			Subtotal:       types.FormatAmount(item.Subtotal(), s.decimals),
			SKU:            item.SKU,
			ImageURL:       item.ImageURL,
		})
	}

	view := View{
		ID:            s.id,
		Items:         views,
		Total:         types.FormatAmount(s.cart.Total(), s.decimals),
		Customer:      s.customer,
		SaleType:      s.saleType,
		PaymentMethod: s.payment,
		Note:          s.note,
		Schedule:      s.schedule,
		Ready: checkout.Ready(s.saleType, checkout.Selection{
			CartEmpty:     s.cart.IsEmpty(),
			Customer:      s.customer,
			PaymentMethod: s.payment,
			Schedule:      s.schedule,
		}),
		CheckoutState: s.orch.State(),
	}

	if s.lastOrder != nil {
		view.LastOrder = &OrderView{
			ID:           s.lastOrder.OrderID.String(),
			Number:       s.lastOrder.Number,
			Status:       s.lastOrder.Status,
			Total:        types.FormatAmount(s.lastOrder.Total, s.decimals),
			SkippedItems: s.lastOrder.SkippedItems,
		}
	}
	return view
}

func (s *Session) touch(at time.Time) {
	s.mu.Lock()
	s.lastSeen = at
	s.mu.Unlock()
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}
