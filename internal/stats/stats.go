// Package stats derives summary counters from an in-memory item set. The
// reducer is pure and runs on every list change; list sizes are bounded by
// pagination so there is no incremental path.
package stats

import (
	"encoding/json"
	"math"
	"strconv"
)

// Amount is a monetary value as the backend sends it. Some endpoints return
// numbers, some quoted numbers, some null or junk; anything that does not
// parse counts as zero so a bad record can never poison a displayed total.
type Amount float64

// UnmarshalJSON never fails; unparseable input becomes zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = sanitize(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if num, err := strconv.ParseFloat(str, 64); err == nil {
			*a = sanitize(num)
		}
	}
	return nil
}

func sanitize(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Amount(v)
}

// Source is the minimal shape the reducer inspects.
type Source interface {
	StatusKey() string
	Amounts() map[string]float64
}

// Summary is the derived aggregate for one item set.
type Summary struct {
	Count    int
	ByStatus map[string]int
	Sums     map[string]float64
}

// Compute reduces items to a Summary. An empty input yields zero counts and
// empty maps, never an error.
func Compute[T Source](items []T) Summary {
	s := Summary{
		ByStatus: make(map[string]int),
		Sums:     make(map[string]float64),
	}
	for _, item := range items {
		s.Count++
		if status := item.StatusKey(); status != "" {
			s.ByStatus[status]++
		}
		for field, value := range item.Amounts() {
			s.Sums[field] += float64(sanitize(value))
		}
	}
	return s
}
