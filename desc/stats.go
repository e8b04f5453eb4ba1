package desc

import (
	"sort"
	"strconv"
	"strings"
)

// Stats are descriptive statistics of a dense composite's values,
// used to tell index tables from unordered bags at a glance.
type Stats struct {
	Count int

	// Numeric is set if every value is an integer. Min, Max and Inversions are only meaningful if it is.
	Numeric bool
	Min     int64
	Max     int64

	// Distinct is the number of different values.
	Distinct int

	// Inversions counts the neighbours in sorted order whose original positions are decreasing.
	// [1 2 3] has none, [3 2 1] has 2, and [3 1 2] has 1; it is not a general inversion count.
	Inversions int
}

// Summarize computes Stats of values.
func Summarize(values []Value) Stats {
	s := Stats{
		Count:   len(values),
		Numeric: len(values) > 0,
	}

	seen := make(map[string]struct{}, len(values))
	ints := make([]int64, 0, len(values))
	for _, v := range values {
		seen[Format(v)] = struct{}{}

		n, ok := normalize(v).(int64)
		if !ok {
			s.Numeric = false
			continue
		}
		ints = append(ints, n)
	}
	s.Distinct = len(seen)

	if !s.Numeric {
		return s
	}

	s.Min, s.Max = ints[0], ints[0]
	for _, n := range ints[1:] {
		if n < s.Min {
			s.Min = n
		}
		if n > s.Max {
			s.Max = n
		}
	}

	order := make([]int, len(ints))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return ints[order[i]] < ints[order[j]]
	})
	for i := 1; i < len(order); i++ {
		if order[i] < order[i-1] {
			s.Inversions++
		}
	}

	return s
}

// String renders the stats as they appear in dumps, i.e. "count=3 min=1 max=3 distinct=all inversions=1".
func (s Stats) String() string {
	var sb strings.Builder
	sb.WriteString("count=")
	sb.WriteString(strconv.Itoa(s.Count))

	if s.Numeric {
		sb.WriteString(" min=")
		sb.WriteString(strconv.FormatInt(s.Min, 10))
		sb.WriteString(" max=")
		sb.WriteString(strconv.FormatInt(s.Max, 10))
	}

	sb.WriteString(" distinct=")
	if s.Distinct == s.Count {
		sb.WriteString("all")
	} else {
		sb.WriteString(strconv.Itoa(s.Distinct))
	}

	if s.Numeric {
		sb.WriteString(" inversions=")
		sb.WriteString(strconv.Itoa(s.Inversions))
	}
	return sb.String()
}
