package forecast

import "errors"

var (
	// ErrConfiguration covers unknown lever levels, bad horizons and bad
	// roadblock windows.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDataUnavailable means no baseline data exists for the requested
	// street or date.
	ErrDataUnavailable = errors.New("no baseline data available")

	// ErrModelUnavailable means the predictive model is not loaded.
	ErrModelUnavailable = errors.New("predictive model not loaded")
)
