package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos2025/pos-backend/internal/cart"
	"github.com/pos2025/pos-backend/pkg/enums"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/logger"
	"github.com/pos2025/pos-backend/pkg/metrics"
	"github.com/pos2025/pos-backend/pkg/types"
)

// LineItem is one submitted order line. UnitPrice carries the effective
// (possibly operator-overridden) price at submission time.
type LineItem struct {
	ProductID   int64
	VariationID int64
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Request is the immutable submission payload. It is built as a deep copy
// of the session state and never references live cart rows.
type Request struct {
	LineItems          []LineItem
	PaymentMethodID    string
	PaymentMethodTitle string
	CustomerID         int64
	SaleType           enums.SaleType
	CustomerNote       string
	Schedule           *types.Schedule
}

// SkippedItem reports a submitted line the order boundary could not resolve.
type SkippedItem struct {
	ProductID   int64  `json:"productId"`
	VariationID int64  `json:"variationId"`
	Reason      string `json:"reason"`
}

// Result is the outcome of a successful submission. SkippedItems is never
// hidden; partial acceptance is part of the result.
type Result struct {
	OrderID         uuid.UUID
	Number          int64
	Status          enums.OrderStatus
	Total           decimal.Decimal
	SkippedItems    []SkippedItem
	CalendarRefetch bool
}

// Snapshot is the session state captured at the moment the operator
// triggers checkout.
type Snapshot struct {
	Items         []cart.Item
	Customer      *types.CustomerRef
	PaymentMethod *types.PaymentMethod
	SaleType      enums.SaleType
	Note          string
	Schedule      types.Schedule
}

// OrderCreator is the single write boundary the orchestrator depends on.
type OrderCreator interface {
	Create(ctx context.Context, req Request) (*Result, error)
}

// Orchestrator runs one session's checkout pipeline. At most one submission
// is in flight at a time; concurrent submits are rejected, never queued.
type Orchestrator struct {
	creator OrderCreator
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger

	mu          sync.Mutex
	state       enums.CheckoutState
	lastOutcome enums.CheckoutState
}

// NewOrchestrator builds an orchestrator for one register session.
func NewOrchestrator(creator OrderCreator, m *metrics.CheckoutMetrics, logg *logger.Logger) (*Orchestrator, error) {
	if creator == nil {
		return nil, fmt.Errorf("order creator required")
	}
	return &Orchestrator{
		creator: creator,
		metrics: m,
		logg:    logg,
		state:   enums.CheckoutStateIdle,
	}, nil
}

// State returns the current pipeline state.
func (o *Orchestrator) State() enums.CheckoutState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastOutcome returns the terminal state of the most recent submission, or
// the empty value if none has completed yet.
func (o *Orchestrator) LastOutcome() enums.CheckoutState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastOutcome
}

// Submit validates the snapshot, builds the request payload, and calls the
// order boundary exactly once. Validation failures never reach the boundary.
// On failure the caller's state is untouched and submission is re-enabled;
// there is no automatic retry.
func (o *Orchestrator) Submit(ctx context.Context, snap Snapshot) (*Result, error) {
	if err := o.begin(); err != nil {
		return nil, err
	}

	if err := Validate(snap.SaleType, Selection{
		CartEmpty:     len(snap.Items) == 0,
		Customer:      snap.Customer,
		PaymentMethod: snap.PaymentMethod,
		Schedule:      snap.Schedule,
	}); err != nil {
		o.finish(enums.CheckoutStateFailed)
		return nil, err
	}

	o.setState(enums.CheckoutStateSubmitting)
	req := buildRequest(snap)

	started := time.Now()
	result, err := o.creator.Create(ctx, req)
	if err != nil {
		o.metrics.IncFailure(req.SaleType.String())
		o.finish(enums.CheckoutStateFailed)
		if o.logg != nil {
			o.logg.Error(o.logg.WithSaleType(ctx, req.SaleType.String()), "checkout.submit failed", err)
		}
		return nil, err
	}

	o.metrics.ObserveDuration(req.SaleType.String(), time.Since(started))
	o.metrics.IncSuccess(req.SaleType.String())

	result.CalendarRefetch = req.SaleType.RequiresSchedule()
	o.finish(enums.CheckoutStateSuccess)
	return result, nil
}

func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.InFlight() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already in progress")
	}
	o.state = enums.CheckoutStateValidating
	return nil
}

func (o *Orchestrator) setState(state enums.CheckoutState) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

// finish records the terminal outcome and immediately returns to idle so
// the operator can act again.
func (o *Orchestrator) finish(terminal enums.CheckoutState) {
	o.mu.Lock()
	o.lastOutcome = terminal
	o.state = enums.CheckoutStateIdle
	o.mu.Unlock()
}

func buildRequest(snap Snapshot) Request {
	req := Request{
		LineItems:    make([]LineItem, 0, len(snap.Items)),
		SaleType:     snap.SaleType,
		CustomerNote: snap.Note,
	}
	for _, item := range snap.Items {
		req.LineItems = append(req.LineItems, LineItem{
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPriceEffective,
		})
	}
	if snap.PaymentMethod != nil {
		req.PaymentMethodID = snap.PaymentMethod.ID
		req.PaymentMethodTitle = snap.PaymentMethod.Title
	}
	if snap.Customer != nil {
		req.CustomerID = snap.Customer.ID
	}
	if snap.SaleType.RequiresSchedule() {
		schedule := snap.Schedule
		req.Schedule = &schedule
	}
	return req
}
