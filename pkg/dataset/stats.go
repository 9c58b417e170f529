package dataset

import "math"

// Correlation computes the Pearson correlation coefficient between two
// numeric columns, considering only rows where both values are present.
// Returns NaN when fewer than two complete pairs exist or either column
// has zero variance.
func (f *Frame) Correlation(a, b string) (float64, error) {
	sa, err := f.Column(a)
	if err != nil {
		return 0, err
	}
	sb, err := f.Column(b)
	if err != nil {
		return 0, err
	}
	if err := sa.requireNumeric("correlation"); err != nil {
		return 0, err
	}
	if err := sb.requireNumeric("correlation"); err != nil {
		return 0, err
	}

	var xs, ys []float64
	for i := 0; i < f.nrows; i++ {
		if sa.nulls[i] || sb.nulls[i] {
			continue
		}
		xs = append(xs, sa.Float(i))
		ys = append(ys, sb.Float(i))
	}
	if len(xs) < 2 {
		return math.NaN(), nil
	}

	n := float64(len(xs))
	var sumX, sumY float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range xs {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN(), nil
	}
	return cov / math.Sqrt(varX*varY), nil
}
