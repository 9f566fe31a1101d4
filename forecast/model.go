package forecast

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Features is the model input schema for one hour. The street is not a
// numeric feature; it selects which per-street weight set is used.
type Features struct {
	StreetID         string
	HourOfDay        int
	DayOfWeek        int
	IsWeekend        bool
	TemperatureC     float64
	PrecipitationMM  float64
	CloudCoverPct    float64
	WindSpeedKMH     float64
	IsHoliday        bool
	IsSchoolVacation bool
}

const numFeatures = 9

// ModeCounts is one hour of predicted counts.
type ModeCounts struct {
	Car        float64
	Bike       float64
	Pedestrian float64
	Heavy      float64
}

// ModeWeights is a linear model for one (street, mode): intercept plus one
// weight per feature, in the file's feature order.
type ModeWeights struct {
	Intercept float64   `json:"intercept"`
	Weights   []float64 `json:"weights"`
}

// Model is a pre-trained regression handle loaded from a weights file. It is
// read-only after load and safe to share across requests.
type Model struct {
	Version   string                            `json:"version"`
	TrainedAt time.Time                         `json:"trained_at"`
	Features  []string                          `json:"features"`
	Streets   map[string]map[string]ModeWeights `json:"streets"`
}

var modeNames = []string{"car", "bike", "pedestrian", "heavy"}

// LoadModel reads a weights file and validates its shape. The training
// procedure itself is out of scope; only the file contract matters here.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model weights: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model weights: %w", err)
	}

	if len(m.Features) != numFeatures {
		return nil, fmt.Errorf("model weights list %d features, want %d", len(m.Features), numFeatures)
	}
	if len(m.Streets) == 0 {
		return nil, fmt.Errorf("model weights cover no streets")
	}
	for street, modes := range m.Streets {
		for _, mode := range modeNames {
			mw, ok := modes[mode]
			if !ok {
				return nil, fmt.Errorf("model weights for street %q missing mode %q", street, mode)
			}
			if len(mw.Weights) != numFeatures {
				return nil, fmt.Errorf("model weights for street %q mode %q have %d weights, want %d",
					street, mode, len(mw.Weights), numFeatures)
			}
		}
	}
	return &m, nil
}

// Predict evaluates the per-mode linear models for one hour. Outputs are
// clamped at zero; counts are never negative.
func (m *Model) Predict(f Features) (ModeCounts, error) {
	modes, ok := m.Streets[f.StreetID]
	if !ok {
		return ModeCounts{}, fmt.Errorf("%w: model has no weights for street %q", ErrDataUnavailable, f.StreetID)
	}

	x := mat.NewVecDense(numFeatures, featureVector(f))

	predict := func(mw ModeWeights) float64 {
		w := mat.NewVecDense(numFeatures, mw.Weights)
		return clampCount(mat.Dot(w, x) + mw.Intercept)
	}

	return ModeCounts{
		Car:        predict(modes["car"]),
		Bike:       predict(modes["bike"]),
		Pedestrian: predict(modes["pedestrian"]),
		Heavy:      predict(modes["heavy"]),
	}, nil
}

func featureVector(f Features) []float64 {
	return []float64{
		float64(f.HourOfDay),
		float64(f.DayOfWeek),
		boolFeature(f.IsWeekend),
		f.TemperatureC,
		f.PrecipitationMM,
		f.CloudCoverPct,
		f.WindSpeedKMH,
		boolFeature(f.IsHoliday),
		boolFeature(f.IsSchoolVacation),
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}
