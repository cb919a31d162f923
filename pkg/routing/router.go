package routing

import (
	"regexp"
	"strings"
)

// Bucket is the topical classification used to pick a scheduling destination.
type Bucket string

const (
	BucketTaxForward Bucket = "tax_forward"
	BucketIncome     Bucket = "income"
	BucketBusiness   Bucket = "business"
	BucketEstate     Bucket = "estate"
	BucketGeneral    Bucket = "general"
)

// MeetingType is the scheduling tier. Urgent transcripts get the 60-minute
// visit, everything else the 15-minute call.
type MeetingType string

const (
	MeetingClarityCall15  MeetingType = "clarity_call_15"
	MeetingClarityVisit60 MeetingType = "clarity_visit_60"
)

// Outcome is the routing decision for a lead.
type Outcome struct {
	Bucket      Bucket
	MeetingType MeetingType
	BookingURL  string
}

// rule pairs a bucket with its match patterns. Rules are evaluated in order
// and the first bucket with any matching pattern wins.
type rule struct {
	bucket   Bucket
	patterns []*regexp.Regexp
}

// Config carries the rule set and the booking-link table. It is injected at
// construction so the router stays a pure function of the transcript.
type Config struct {
	BookingURLs map[string]string
}

func DefaultConfig() Config {
	return Config{
		BookingURLs: map[string]string{
			"tax_forward_15": "https://calendly.com/fiat-wealth/tax-clarity-call-15min",
			"tax_forward_60": "https://calendly.com/fiat-wealth/tax-clarity-visit-60min",
			"income_15":      "https://calendly.com/fiat-wealth/income-clarity-call-15min",
			"income_60":      "https://calendly.com/fiat-wealth/income-clarity-visit-60min",
			"business_15":    "https://calendly.com/fiat-wealth/business-clarity-call-15min",
			"business_60":    "https://calendly.com/fiat-wealth/business-clarity-visit-60min",
			"estate_15":      "https://calendly.com/fiat-wealth/estate-clarity-call-15min",
			"estate_60":      "https://calendly.com/fiat-wealth/estate-clarity-visit-60min",
			"general_15":     "https://calendly.com/fiat-wealth/clarity-call-15min",
			"general_60":     "https://calendly.com/fiat-wealth/clarity-visit-60min",
		},
	}
}

// Ordered bucket rules, first match wins: tax -> income -> business -> estate.
// No match falls through to general.
var bucketRules = []rule{
	{
		bucket: BucketTaxForward,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(tax|taxes|roth|irmaa|conversion|medicare)\b`),
			regexp.MustCompile(`\b(tax planning|tax strategy|tax bracket)\b`),
		},
	},
	{
		bucket: BucketIncome,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(retirement income|social security|pension|annuity)\b`),
			regexp.MustCompile(`\b(withdrawal|distribution|rmd|required minimum)\b`),
		},
	},
	{
		bucket: BucketBusiness,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(business owner|sell.*business|liquidity event)\b`),
			regexp.MustCompile(`\b(exit strategy|company sale|equity compensation)\b`),
		},
	},
	{
		bucket: BucketEstate,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(estate|legacy|inheritance|trust|beneficiary)\b`),
			regexp.MustCompile(`\b(gift|charitable|philanthrop)\b`),
		},
	},
}

// Urgency: retirement or a major transition within roughly 12 months.
// Any match forces the 60-minute visit regardless of bucket.
var urgencyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(retiring (soon|within|in \d+)|retire next year|retiring in \d+)\b`),
	regexp.MustCompile(`\b(major (event|decision|change)|urgent|time-sensitive)\b`),
	regexp.MustCompile(`\b(selling business|sold company|windfall)\b`),
}

// Router classifies a conversation transcript into a bucket and meeting type
// and resolves the booking link. Pure and deterministic: the same transcript
// always yields the same outcome.
type Router struct {
	cfg Config
}

func NewRouter(cfg Config) *Router {
	if len(cfg.BookingURLs) == 0 {
		cfg = DefaultConfig()
	}
	return &Router{cfg: cfg}
}

// Route decides bucket, meeting type and booking URL for a transcript of
// concatenated user messages.
func (r *Router) Route(transcript string) Outcome {
	bucket := classifyBucket(transcript)
	meeting := classifyMeetingType(transcript)

	return Outcome{
		Bucket:      bucket,
		MeetingType: meeting,
		BookingURL:  r.bookingURL(bucket, meeting),
	}
}

func classifyBucket(transcript string) Bucket {
	lowered := strings.ToLower(transcript)
	for _, rl := range bucketRules {
		for _, p := range rl.patterns {
			if p.MatchString(lowered) {
				return rl.bucket
			}
		}
	}
	return BucketGeneral
}

func classifyMeetingType(transcript string) MeetingType {
	lowered := strings.ToLower(transcript)
	for _, p := range urgencyPatterns {
		if p.MatchString(lowered) {
			return MeetingClarityVisit60
		}
	}
	return MeetingClarityCall15
}

func (r *Router) bookingURL(bucket Bucket, meeting MeetingType) string {
	suffix := "15"
	if meeting == MeetingClarityVisit60 {
		suffix = "60"
	}
	if url, ok := r.cfg.BookingURLs[string(bucket)+"_"+suffix]; ok {
		return url
	}
	return r.cfg.BookingURLs["general_15"]
}
