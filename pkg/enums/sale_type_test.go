package enums

import "testing"

func TestSaleTypeCustomerRequirement(t *testing.T) {
	if SaleTypeDirect.RequiresCustomer() {
		t.Fatal("direct sales allow guests")
	}
	if !SaleTypeSubscription.RequiresCustomer() {
		t.Fatal("subscription sales require a customer")
	}
	if !SaleTypeCredit.RequiresCustomer() {
		t.Fatal("credit sales require a customer")
	}
}

func TestSaleTypeOrderStatus(t *testing.T) {
	if got := SaleTypeCredit.OrderStatus(); got != OrderStatusOnHold {
		t.Fatalf("credit sales must land on hold, got %s", got)
	}
	if got := SaleTypeDirect.OrderStatus(); got != OrderStatusProcessing {
		t.Fatalf("direct sales go to processing, got %s", got)
	}
	if got := SaleTypeSubscription.OrderStatus(); got != OrderStatusProcessing {
		t.Fatalf("subscription sales go to processing, got %s", got)
	}
}

func TestParseSaleType(t *testing.T) {
	if _, err := ParseSaleType("layaway"); err == nil {
		t.Fatal("expected error for unknown sale type")
	}
	st, err := ParseSaleType("subscription")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !st.RequiresSchedule() {
		t.Fatal("subscription carries schedule fields")
	}
}
