package session

// BillingMode selects how a session accrues cost.
type BillingMode string

const (
	// ModePerGame bills a fixed price per game regardless of elapsed time.
	ModePerGame BillingMode = "per_game"
	// ModeHourly accrues cost proportionally to elapsed time at a fixed
	// hourly rate, prorated per started minute.
	ModeHourly BillingMode = "hourly"
)

func (m BillingMode) IsValid() bool {
	return m == ModePerGame || m == ModeHourly
}

func (m BillingMode) String() string {
	return string(m)
}

// EndReason records how a session left the active map.
type EndReason string

const (
	ReasonCompleted EndReason = "completed"
	ReasonCancelled EndReason = "cancelled"
)

func (r EndReason) IsValid() bool {
	return r == ReasonCompleted || r == ReasonCancelled
}
