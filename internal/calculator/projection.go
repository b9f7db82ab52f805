package calculator

import (
	"errors"

	"StockPulse/internal/model"
)

// Project extends a moving average horizon steps past its seed by feeding
// each estimate back into the same formula. The seed holds the newest
// moving-average values, oldest first.
func Project(kind model.MAType, seed []float64, window, horizon int) ([]float64, error) {
	if window <= 0 {
		return nil, errWindow
	}
	if horizon <= 0 {
		return nil, nil
	}
	if len(seed) == 0 {
		return nil, model.ErrInsufficientData
	}

	buf := make([]float64, len(seed), len(seed)+horizon)
	copy(buf, seed)
	alpha := Alpha(window)

	for step := 0; step < horizon; step++ {
		var next float64
		switch kind {
		case model.SMA:
			start := len(buf) - window
			if start < 0 {
				start = 0
			}
			next, _ = Mean(buf[start:])
		case model.EMA:
			last := buf[len(buf)-1]
			prev := last
			if len(buf) >= 2 {
				prev = buf[len(buf)-2]
			}
			next = alpha*last + (1-alpha)*prev
		default:
			return nil, errors.New("unknown moving average type " + string(kind))
		}
		buf = append(buf, next)
	}
	return buf[len(buf)-horizon:], nil
}
