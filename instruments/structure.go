package instruments

// Structure is the redemption profile of a lending instrument.
type Structure string

const (
	// Bullet repays the whole notional at maturity.
	Bullet Structure = "BULLET"
	// EqualRedemptions repays notional/n at each coupon date.
	EqualRedemptions Structure = "EQUAL_REDEMPTIONS"
	// EqualPayments keeps interest + redemption constant across periods;
	// the payment level is solved numerically.
	EqualPayments Structure = "EQUAL_PAYMENTS"
	// Zero has a single period and repays everything at maturity.
	Zero Structure = "ZERO"
	// Other takes user-supplied disbursement and redemption events.
	Other Structure = "OTHER"
)

// RateType describes which coupon variant each part of a double-rate
// instrument carries.
type RateType string

const (
	FixedThenFixed    RateType = "FIXED_THEN_FIXED"
	FixedThenFloating RateType = "FIXED_THEN_FLOATING"
	FloatingThenFixed RateType = "FLOATING_THEN_FIXED"
)
