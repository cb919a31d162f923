package constant

const (
	ConsentEventTypeLeadCapture = "lead_capture"

	DisclosureVersion = "v1.0"
	DisclosureText    = "By continuing, you agree that Fiat Wealth Management may contact you by phone, " +
		"email, or text regarding your request. Message & data rates may apply. " +
		"Reply STOP to opt out."
)
