package blueprint

// Outcome classifies the result of a validation walk.
type Outcome uint8

const (
	OutcomeValid Outcome = iota
	// OutcomeInvalid means per-field messages were collected.
	OutcomeInvalid
	// OutcomeSchemaViolation means a strict level met an undeclared key.
	OutcomeSchemaViolation
	// OutcomeMalformed means the data could not be walked (too deep or cyclic).
	OutcomeMalformed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSchemaViolation:
		return "schema_violation"
	case OutcomeMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Result is the outcome of Schema.Check. Exactly one of Messages, Violation
// or the structural error is meaningful, as told by Outcome.
type Result struct {
	Outcome   Outcome
	Messages  ValidationError
	Violation *SchemaViolationError
	err       error
}

// Valid reports whether the data passed validation.
func (r Result) Valid() bool {
	return r.Outcome == OutcomeValid
}

// Err returns the result as an error, nil when valid.
func (r Result) Err() error {
	switch r.Outcome {
	case OutcomeInvalid:
		return r.Messages
	case OutcomeSchemaViolation:
		return r.Violation
	case OutcomeMalformed:
		return r.err
	default:
		return nil
	}
}
