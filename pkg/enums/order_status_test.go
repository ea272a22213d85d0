package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusApproved, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusApproved, OrderStatusShipped, true},
		{OrderStatusApproved, OrderStatusCancelled, false},
		{OrderStatusApproved, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusApproved, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected allowed=%v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("SHIPPED"); err != nil {
		t.Fatalf("expected SHIPPED to parse, got %v", err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("expected lowercase status to be rejected")
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("ADMIN")
	if err != nil {
		t.Fatalf("expected ADMIN to parse, got %v", err)
	}
	if role != RoleAdmin {
		t.Fatalf("expected RoleAdmin, got %s", role)
	}
	if _, err := ParseRole("superuser"); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
}
