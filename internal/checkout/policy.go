package checkout

import (
	"time"

	"github.com/pos2025/pos-backend/pkg/enums"
	pkgerrors "github.com/pos2025/pos-backend/pkg/errors"
	"github.com/pos2025/pos-backend/pkg/types"
)

const scheduleDateLayout = "2006-01-02"

// Selection is the state the sale-type policy validates: what the operator
// has picked alongside the cart contents.
type Selection struct {
	CartEmpty     bool
	Customer      *types.CustomerRef
	PaymentMethod *types.PaymentMethod
	Schedule      types.Schedule
}

type fieldCheck struct {
	name  string
	check func(Selection) error
}

type requirements struct {
	needsCustomer bool
	fields        []fieldCheck
}

var requirementsBySaleType = map[enums.SaleType]requirements{
	enums.SaleTypeDirect: {},
	enums.SaleTypeCredit: {
		needsCustomer: true,
	},
	enums.SaleTypeSubscription: {
		needsCustomer: true,
		fields: []fieldCheck{
			{name: "schedule_title", check: checkScheduleTitle},
			{name: "schedule_start_date", check: checkScheduleStartDate},
		},
	},
}

// RequiredFields lists the sale-type specific fields the policy checks, in
// validation order.
func RequiredFields(saleType enums.SaleType) []string {
	reqs := requirementsBySaleType[saleType]
	names := make([]string, 0, len(reqs.fields))
	for _, f := range reqs.fields {
		names = append(names, f.name)
	}
	return names
}

// Validate checks the selection against the sale type's requirements and
// returns the first unmet one. The order is fixed: payment method, cart
// contents, customer, then sale-type specific fields.
func Validate(saleType enums.SaleType, sel Selection) error {
	if !saleType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown sale type")
	}

	if sel.PaymentMethod == nil || sel.PaymentMethod.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a payment method")
	}
	if sel.CartEmpty {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	reqs := requirementsBySaleType[saleType]
	if reqs.needsCustomer && (sel.Customer == nil || sel.Customer.IsGuest()) {
		return pkgerrors.New(pkgerrors.CodeValidation, "select a customer for this sale type")
	}
	for _, f := range reqs.fields {
		if err := f.check(sel); err != nil {
			return err
		}
	}
	return nil
}

// Ready reports whether checkout can currently be submitted. It is the
// boolean view of Validate and drives UI affordance only; submission
// re-validates against its own snapshot.
func Ready(saleType enums.SaleType, sel Selection) bool {
	return Validate(saleType, sel) == nil
}

func checkScheduleTitle(sel Selection) error {
	if sel.Schedule.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "schedule title is required")
	}
	return nil
}

func checkScheduleStartDate(sel Selection) error {
	if sel.Schedule.StartDate == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "schedule start date is required")
	}
	if _, err := time.Parse(scheduleDateLayout, sel.Schedule.StartDate); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "schedule start date must be YYYY-MM-DD")
	}
	return nil
}
