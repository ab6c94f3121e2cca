package diff

import "fmt"

// Richardson combines the base stencil evaluated at steps h and h/2 to
// cancel the leading truncation term, raising the effective accuracy by
// two orders. With the base stencil accurate to O(h^p) the combination is
//
//	D = (2^p·D(h/2) − D(h)) / (2^p − 1)
//
// which reduces to (4·D(h/2) − D(h))/3 for the central stencil and
// 2·D(h/2) − D(h) for the one-sided ones.
func Richardson(m Method, f Func, x, h float64, order int) (*Result, error) {
	coarse, err := Derivative(m, f, x, h, order)
	if err != nil {
		return nil, err
	}
	fine, err := Derivative(m, f, x, h/2, order)
	if err != nil {
		return nil, err
	}

	p := stencils[m][order].accuracy
	w := float64(int(1) << p) // 2^p
	value := (w*fine.Value - coarse.Value) / (w - 1)

	samples := make([]Sample, 0, len(coarse.Samples)+len(fine.Samples))
	samples = append(samples, coarse.Samples...)
	samples = append(samples, fine.Samples...)

	return &Result{
		Value:      value,
		Method:     m,
		Order:      order,
		Step:       h,
		Point:      x,
		ErrorOrder: fmt.Sprintf("O(h^%d)", p+2),
		Samples:    samples,
		Richardson: true,
	}, nil
}
