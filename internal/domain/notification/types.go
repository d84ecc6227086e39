package notification

type Status string

const (
	StatusReceived Status = "RECEIVED"
	StatusSent     Status = "SENT"
	StatusFailed   Status = "FAILED"
)

// DefaultMaxRetries is the number of retry sweeps a failed record gets before it is dead-lettered.
const DefaultMaxRetries = 3

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusReceived, StatusSent, StatusFailed:
		return true
	default:
		return false
	}
}
