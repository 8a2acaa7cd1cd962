package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger. Rolls of template expressions are
// logged at debug level.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that rolls with src and logs to logger.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Number returns a uniform integer in [from, to]. The bounds are swapped
// when given in the wrong order.
func (r *Roller) Number(from, to int) int {
	if from > to {
		from, to = to, from
	}
	return from + r.src.Intn(to-from+1)
}

// Dice returns the sum of num rolls of a size-sided die. Non-positive
// arguments roll zero.
func (r *Roller) Dice(num, size int) int {
	if num <= 0 || size <= 0 {
		return 0
	}
	sum := 0
	for range num {
		sum += r.src.Intn(size) + 1
	}
	return sum
}

// Percent returns a roll in [1, 100].
func (r *Roller) Percent() int { return r.Number(1, 100) }

// Chance reports whether a percent roll came in at or under pct.
func (r *Roller) Chance(pct int) bool { return r.Percent() <= pct }

// Roll evaluates expr.
//
// Postcondition: expr.Min() <= result <= expr.Max().
func (r *Roller) Roll(expr Expression) int {
	total := r.Dice(expr.Count, expr.Sides) + expr.Modifier
	r.logger.Debug("dice roll",
		zap.String("expression", expr.String()),
		zap.Int("total", total),
	)
	return total
}
