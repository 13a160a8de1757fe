package assertions

import (
	"fmt"
	"math"
)

func numbers(values ...any) ([]float64, error) {
	out := make([]float64, len(values))
	for i, v := range values {
		f, ok := toFloat64(v)
		if !ok {
			return nil, fmt.Errorf("%w: %v (%T)", ErrNotNumber, v, v)
		}
		out[i] = f
	}
	return out, nil
}

// IsCloseTo passes when |actual - expected| <= offset.
func (e *Evaluator) IsCloseTo(actual, expected, offset any) *Result {
	r := e.newResult("isCloseTo", actual, expected)
	n, err := numbers(actual, expected, offset)
	if err != nil {
		return r.abort(err)
	}
	if n[2] < 0 {
		return r.abort(fmt.Errorf("%w: %v", ErrNegativeOffset, offset))
	}
	diff := math.Abs(n[0] - n[1])
	if diff <= n[2] {
		return r.pass()
	}
	return r.fail("expected %v to be close to %v by less than %v but difference was %v", actual, expected, offset, diff)
}

// IsCloseToPercentage passes when actual is within percentage percent of
// expected.
func (e *Evaluator) IsCloseToPercentage(actual, expected, percentage any) *Result {
	r := e.newResult("isCloseToPercentage", actual, expected)
	n, err := numbers(actual, expected, percentage)
	if err != nil {
		return r.abort(err)
	}
	if n[2] < 0 {
		return r.abort(fmt.Errorf("%w: %v%%", ErrNegativeOffset, percentage))
	}
	diff := math.Abs(n[0] - n[1])
	if diff <= math.Abs(n[1])*n[2]/100 {
		return r.pass()
	}
	return r.fail("expected %v to be close to %v by less than %v%% but difference was %v%%",
		actual, expected, percentage, percentOf(diff, n[1]))
}

func percentOf(diff, base float64) float64 {
	if base == 0 {
		return math.Inf(1)
	}
	return diff / math.Abs(base) * 100
}

// IsBetween passes when start <= actual <= end.
func (e *Evaluator) IsBetween(actual, start, end any) *Result {
	return e.between("isBetween", actual, start, end, true)
}

// IsStrictlyBetween passes when start < actual < end.
func (e *Evaluator) IsStrictlyBetween(actual, start, end any) *Result {
	return e.between("isStrictlyBetween", actual, start, end, false)
}

func (e *Evaluator) between(op string, actual, start, end any, inclusive bool) *Result {
	r := e.newResult(op, actual, []any{start, end})
	n, err := numbers(actual, start, end)
	if err != nil {
		return r.abort(err)
	}
	if n[1] > n[2] {
		return r.abort(fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, start, end))
	}
	if inclusive && n[0] >= n[1] && n[0] <= n[2] {
		return r.pass()
	}
	if !inclusive && n[0] > n[1] && n[0] < n[2] {
		return r.pass()
	}
	if inclusive {
		return r.fail("expected %v to be between [%v, %v]", actual, start, end)
	}
	return r.fail("expected %v to be strictly between ]%v, %v[", actual, start, end)
}
