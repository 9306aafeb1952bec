package enum

type Severity string

const (
	SeverityError Severity = "error"
)
