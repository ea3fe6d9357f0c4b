package enums

import "testing"

func TestOrderStatusNextWalksLinearFlow(t *testing.T) {
	steps := map[OrderStatus]OrderStatus{
		OrderStatusPending:    OrderStatusConfirmed,
		OrderStatusConfirmed:  OrderStatusProcessing,
		OrderStatusProcessing: OrderStatusShipped,
		OrderStatusShipped:    OrderStatusDelivered,
	}
	for current, want := range steps {
		next, ok := current.Next()
		if !ok {
			t.Fatalf("expected next step from %s", current)
		}
		if next != want {
			t.Fatalf("advance(%s) = %s, want %s", current, next, want)
		}
	}
}

func TestOrderStatusNextStopsAtTerminalStates(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned, OrderStatus("Bogus")} {
		if next, ok := status.Next(); ok {
			t.Fatalf("advance(%s) should offer no next step, got %s", status, next)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Shipped")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if status != OrderStatusShipped {
		t.Fatalf("got %s", status)
	}

	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatalf("status values are case-sensitive; expected error")
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	if OrderStatusPending.IsTerminal() {
		t.Fatalf("Pending is not terminal")
	}
	for _, status := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned} {
		if !status.IsTerminal() {
			t.Fatalf("%s should be terminal", status)
		}
	}
}
