package observability

// Metric name prefixes
const (
	MetricPrefix = "auctioneer"
)

// Metric names
const (
	// Bidding metrics
	BidsTotal       = MetricPrefix + ".bids.total"
	BidRetriesTotal = MetricPrefix + ".bids.retries_total"

	// Notification metrics
	NotificationsTotal    = MetricPrefix + ".notifications.total"
	SweepRunsTotal        = MetricPrefix + ".notifications.sweep_runs_total"
	SweepDuration         = MetricPrefix + ".notifications.sweep_duration"
	SweepRecipientsNotice = MetricPrefix + ".notifications.sweep_recipients"

	// NATS metrics
	NATSMessagesPublishedTotal = MetricPrefix + ".nats.messages_published_total"
)

// Label keys
const (
	LabelOutcome   = "outcome"
	LabelResult    = "result"
	LabelEventType = "event_type"
)

// NATS publish results
const (
	ResultOK    = "ok"
	ResultError = "error"
)
