package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPromoCodeUsable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		code PromoCode
		want bool
	}{
		{"active no expiry", PromoCode{Code: "SWEET10", Percent: 10, Active: true}, true},
		{"inactive", PromoCode{Code: "OFF", Percent: 10, Active: false}, false},
		{"zero percent", PromoCode{Code: "ZERO", Percent: 0, Active: true}, false},
		{"over 100 percent", PromoCode{Code: "BIG", Percent: 150, Active: true}, false},
		{"expired", PromoCode{Code: "OLD", Percent: 10, Active: true, ExpiresAt: "2025-01-01T00:00:00Z"}, false},
		{"not yet expired", PromoCode{Code: "NEW", Percent: 10, Active: true, ExpiresAt: "2025-12-01T00:00:00Z"}, true},
		{"bad expiry format", PromoCode{Code: "BAD", Percent: 10, Active: true, ExpiresAt: "tomorrow"}, false},
		{"uses exhausted", PromoCode{Code: "USED", Percent: 10, Active: true, MaxUses: 5, Uses: 5}, false},
		{"uses remaining", PromoCode{Code: "LEFT", Percent: 10, Active: true, MaxUses: 5, Uses: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.Usable(now))
		})
	}
}

func TestPromoCodeDiscountOn(t *testing.T) {
	code := PromoCode{Percent: 25}
	assert.InDelta(t, 12.5, code.DiscountOn(50), 1e-9)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}
