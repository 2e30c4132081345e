package observability

// Metric namespace
const (
	MetricNamespace = "cluesbot"
)

// Label keys
const (
	LabelType       = "type"
	LabelOutcome    = "outcome"
	LabelReason     = "reason"
	LabelDifficulty = "difficulty"
	LabelPeriod     = "period"
)

// Message types read from Discord
const (
	MessageTypeMessage     = "message"
	MessageTypeShareCard   = "share_card"
	MessageTypeInteraction = "interaction"
)

// Submission outcomes
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)
