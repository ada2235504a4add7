package payment

import "testing"

func TestSignatureRoundTrip(t *testing.T) {
	secret := "shared-key"
	sig := Sign("order_abc", "pay_xyz", secret)

	if len(sig) != 64 {
		t.Fatalf("signature length = %d, want 64 hex chars", len(sig))
	}
	if !signatureMatches("order_abc", "pay_xyz", sig, secret) {
		t.Fatal("recomputed signature did not match")
	}
}

func TestSignatureMismatches(t *testing.T) {
	secret := "shared-key"
	sig := Sign("order_abc", "pay_xyz", secret)

	cases := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
	}{
		{"tampered order id", "order_abd", "pay_xyz", sig, secret},
		{"tampered payment id", "order_abc", "pay_xyy", sig, secret},
		{"wrong secret", "order_abc", "pay_xyz", sig, "other-key"},
		{"garbage signature", "order_abc", "pay_xyz", "deadbeef", secret},
		{"empty signature", "order_abc", "pay_xyz", "", secret},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if signatureMatches(tc.orderID, tc.paymentID, tc.signature, tc.secret) {
				t.Fatal("signature unexpectedly verified")
			}
		})
	}
}

func TestSignatureFieldBoundary(t *testing.T) {
	// The separator keeps ("ab","c") and ("a","bc") from colliding.
	secret := "shared-key"
	if Sign("ab", "c", secret) == Sign("a", "bc", secret) {
		t.Fatal("field boundary collision")
	}
}
