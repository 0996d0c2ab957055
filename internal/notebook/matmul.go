package notebook

import (
	"fmt"
	"io"

	"github.com/born-ml/notebooks/internal/backend/cpu"
	"github.com/born-ml/notebooks/internal/tensor"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Matrix is the integer tensor the comparators work on.
type Matrix = tensor.Tensor[int64, *cpu.CPUBackend]

// Comparator is one multiplication entry point applied to a pair of 2x2
// matrices.
type Comparator struct {
	Name string
	Fn   func(a, b *Matrix) *Matrix
}

// Comparators returns the four multiplication entry points in the order the
// notebook shows them.
func Comparators() []Comparator {
	return []Comparator{
		{Name: "elementwise (Mul)", Fn: Elementwise},
		{Name: "2-D matrix product (MatMul)", Fn: MatMul2D},
		{Name: "batched 3-D matrix product (BatchMatMul)", Fn: BatchMatMul3D},
		{Name: "broadcasting matrix product (BroadcastMatMul)", Fn: BroadcastMatMul},
	}
}

// ComparatorInputs returns A = [[1, 2], [3, 4]] and B = ones(2, 2).
func ComparatorInputs(backend *cpu.CPUBackend) (a, b *Matrix) {
	a, err := tensor.FromSlice([]int64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	if err != nil {
		panic(err)
	}
	return a, tensor.Ones[int64](tensor.Shape{2, 2}, backend)
}

// Elementwise multiplies a and b element by element.
func Elementwise(a, b *Matrix) *Matrix {
	return a.Mul(b)
}

// MatMul2D is the 2-D-only matrix product.
func MatMul2D(a, b *Matrix) *Matrix {
	return a.MatMul(b)
}

// BatchMatMul3D lifts a and b into batches of one and multiplies them with
// the 3-D-only batched product. The result keeps the batch dimension.
func BatchMatMul3D(a, b *Matrix) *Matrix {
	return a.Unsqueeze(0).BatchMatMul(b.Unsqueeze(0))
}

// BroadcastMatMul is the general matrix product with vector promotion and
// batch broadcasting.
func BroadcastMatMul(a, b *Matrix) *Matrix {
	return a.BroadcastMatMul(b)
}

// MatmulNotebook compares the four multiplication entry points and shows
// which operand ranks each one accepts.
func MatmulNotebook(backend *cpu.CPUBackend) *Notebook {
	a, b := ComparatorInputs(backend)

	cells := []Cell{{
		Title: "Inputs",
		Run: func(w io.Writer) error {
			fmt.Fprintf(w, "A = %v\n", a)
			fmt.Fprintf(w, "B = %v\n", b)
			return nil
		},
	}}

	for _, c := range Comparators() {
		cells = append(cells, Cell{
			Title: c.Name,
			Run: func(w io.Writer) error {
				out := c.Fn(a, b)
				fmt.Fprintf(w, "shape %v\n%v\n", []int(out.Shape()), out)
				return nil
			},
		})
	}

	cells = append(cells, Cell{
		Title: "Rank requirements",
		Run: func(w io.Writer) error {
			a3, b3 := a.Unsqueeze(0), b.Unsqueeze(0)
			v, err := tensor.FromSlice([]int64{1, 1}, tensor.Shape{2}, backend)
			if err != nil {
				return errors.Wrap(err, "vector")
			}

			checks := []struct {
				label string
				fn    func() *Matrix
			}{
				{"MatMul(3-D, 3-D)", func() *Matrix { return a3.MatMul(b3) }},
				{"BatchMatMul(2-D, 2-D)", func() *Matrix { return a.BatchMatMul(b) }},
				{"BroadcastMatMul(3-D, 2-D)", func() *Matrix { return a3.BroadcastMatMul(b) }},
				{"BroadcastMatMul(2-D, 1-D)", func() *Matrix { return a.BroadcastMatMul(v) }},
			}
			for _, check := range checks {
				var out *Matrix
				if err := catch(func() { out = check.fn() }); err != nil {
					fmt.Fprintf(w, "%s: rejected: %v\n", check.label, err)
					continue
				}
				fmt.Fprintf(w, "%s: shape %v\n%v\n", check.label, []int(out.Shape()), out)
			}
			return nil
		},
	})

	cells = append(cells, Cell{
		Title: "Reference product (gonum)",
		Run: func(w io.Writer) error {
			ref := ReferenceMatMul(a, b)
			fmt.Fprintf(w, "%v\n", mat.Formatted(ref, mat.Squeeze()))

			got := MatMul2D(a, b)
			if !mat.Equal(ref, toDense(got)) {
				return errors.Errorf("MatMul %v disagrees with reference", got)
			}
			fmt.Fprintln(w, "MatMul agrees with the reference product")
			return nil
		},
	})

	return &Notebook{Title: "Matrix multiplication", Cells: cells}
}

// ReferenceMatMul computes a @ b with gonum's dense matrices.
// Both operands must be 2-D.
func ReferenceMatMul(a, b *Matrix) *mat.Dense {
	var out mat.Dense
	out.Mul(toDense(a), toDense(b))
	return &out
}

// toDense copies a 2-D matrix into a gonum float64 matrix.
func toDense(m *Matrix) *mat.Dense {
	shape := m.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("toDense: expected 2D matrix, got shape %v", shape))
	}
	return mat.NewDense(shape[0], shape[1], m.Raw().ToFloat64())
}
