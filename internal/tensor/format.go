package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

const formatPrefix = "tensor("

// Format renders a tensor's values in the nested-bracket layout used by the
// notebooks:
//
//	tensor([[1, 2],
//	        [3, 4]])
//
// Floats are printed with four decimals; elements are right-aligned to a
// common width. A non-empty suffix is appended after the values, e.g.
// "grad_fn=<AddBackward0>".
func Format(r *RawTensor, suffix string) string {
	vals := formatElements(r)
	width := 0
	for _, v := range vals {
		width = max(width, len(v))
	}

	var sb strings.Builder
	sb.WriteString(formatPrefix)
	if len(r.Shape()) == 0 {
		sb.WriteString(vals[0])
	} else {
		writeDim(&sb, vals, r.Shape(), r.Strides(), 0, 0, width)
	}
	if suffix != "" {
		sb.WriteString(", ")
		sb.WriteString(suffix)
	}
	sb.WriteByte(')')
	return sb.String()
}

func writeDim(sb *strings.Builder, vals []string, shape Shape, strides []int, dim, offset, width int) {
	last := dim == len(shape)-1

	sb.WriteByte('[')
	for i := 0; i < shape[dim]; i++ {
		if i > 0 {
			if last {
				sb.WriteString(", ")
			} else {
				// One extra blank line per nesting level below this one.
				sb.WriteByte(',')
				sb.WriteString(strings.Repeat("\n", len(shape)-dim-1))
				sb.WriteString(strings.Repeat(" ", len(formatPrefix)+dim+1))
			}
		}
		if last {
			fmt.Fprintf(sb, "%*s", width, vals[offset+i])
		} else {
			writeDim(sb, vals, shape, strides, dim+1, offset+i*strides[dim], width)
		}
	}
	sb.WriteByte(']')
}

func formatElements(r *RawTensor) []string {
	out := make([]string, r.NumElements())
	switch r.DType() {
	case Float32:
		for i, v := range r.AsFloat32() {
			out[i] = strconv.FormatFloat(float64(v), 'f', 4, 32)
		}
	case Float64:
		for i, v := range r.AsFloat64() {
			out[i] = strconv.FormatFloat(v, 'f', 4, 64)
		}
	case Int32:
		for i, v := range r.AsInt32() {
			out[i] = strconv.FormatInt(int64(v), 10)
		}
	case Int64:
		for i, v := range r.AsInt64() {
			out[i] = strconv.FormatInt(v, 10)
		}
	}
	return out
}
