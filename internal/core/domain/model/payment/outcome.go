package payment

// Outcome is what a verified provider event reports about a charge.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeProcessing
	OutcomeSucceeded
	OutcomeFailed
	OutcomeRefunded
)

// TargetStatus is the payment status an outcome leads to.
func (o Outcome) TargetStatus() Status {
	switch o {
	case OutcomeProcessing:
		return Processing
	case OutcomeSucceeded:
		return Completed
	case OutcomeFailed:
		return Failed
	case OutcomeRefunded:
		return Refunded
	default:
		return Unknown
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessing:
		return "processing"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}
