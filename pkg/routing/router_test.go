package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteBuckets(t *testing.T) {
	r := NewRouter(DefaultConfig())

	tests := []struct {
		name       string
		transcript string
		want       Bucket
	}{
		{"roth conversion", "How do Roth conversions affect Medicare premiums?", BucketTaxForward},
		{"irmaa", "I'm worried about IRMAA surcharges next year", BucketTaxForward},
		{"social security", "When should I claim social security?", BucketIncome},
		{"rmd", "What about my RMD withdrawal schedule?", BucketIncome},
		{"business owner", "I'm a business owner thinking about an exit strategy", BucketBusiness},
		{"estate", "How do I set up a trust for my kids?", BucketEstate},
		{"charitable", "I'd like to plan some charitable giving", BucketEstate},
		{"no match", "Hello, can you help me plan?", BucketGeneral},
		{"empty", "", BucketGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(tt.transcript).Bucket)
		})
	}
}

func TestRouteRulePrecedence(t *testing.T) {
	r := NewRouter(DefaultConfig())

	// Transcript matches both tax and estate rules; tax is ordered first.
	out := r.Route("I want to talk about roth conversions and my estate plan")
	assert.Equal(t, BucketTaxForward, out.Bucket)

	// Income vs estate: income ordered first.
	out = r.Route("social security timing and inheritance questions")
	assert.Equal(t, BucketIncome, out.Bucket)
}

func TestRouteUrgencyOverride(t *testing.T) {
	r := NewRouter(DefaultConfig())

	tests := []struct {
		name       string
		transcript string
		want       MeetingType
	}{
		{"retiring in months", "I'm retiring in 3 months and need help planning", MeetingClarityVisit60},
		{"retire next year", "I plan to retire next year", MeetingClarityVisit60},
		{"urgent", "This is urgent, I need guidance", MeetingClarityVisit60},
		{"selling business", "We are selling business assets soon", MeetingClarityVisit60},
		{"no urgency", "Just exploring roth conversions", MeetingClarityCall15},
		{"empty", "", MeetingClarityCall15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(tt.transcript).MeetingType)
		})
	}
}

func TestRouteUrgencyForcesVisitRegardlessOfBucket(t *testing.T) {
	r := NewRouter(DefaultConfig())

	out := r.Route("I'm retiring in 3 months, what about taxes?")
	assert.Equal(t, BucketTaxForward, out.Bucket)
	assert.Equal(t, MeetingClarityVisit60, out.MeetingType)
	assert.Equal(t, "https://calendly.com/fiat-wealth/tax-clarity-visit-60min", out.BookingURL)
}

func TestRouteBookingURLTable(t *testing.T) {
	r := NewRouter(DefaultConfig())

	out := r.Route("hello there")
	assert.Equal(t, "https://calendly.com/fiat-wealth/clarity-call-15min", out.BookingURL)

	out = r.Route("questions about my pension")
	assert.Equal(t, "https://calendly.com/fiat-wealth/income-clarity-call-15min", out.BookingURL)
}

func TestRouteIsDeterministic(t *testing.T) {
	r := NewRouter(DefaultConfig())
	transcript := "I'm a business owner retiring in 6 months with estate questions"

	first := r.Route(transcript)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Route(transcript))
	}
}
