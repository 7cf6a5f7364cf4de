package estimator

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrContributionSum indicates contribution shares that do not add up to 100.
	ErrContributionSum = constError("contribution shares must sum to 100")

	// ErrTableKeys indicates grid-intensity and contribution tables with different categories.
	ErrTableKeys = constError("grid intensity and contribution tables must share categories")

	// ErrEmptyTable indicates a table without categories.
	ErrEmptyTable = constError("table has no categories")

	// ErrNonFinite indicates a table value that is NaN or infinite.
	ErrNonFinite = constError("table values must be finite")
)
