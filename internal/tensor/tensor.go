package tensor

import (
	"fmt"

	"github.com/born-ml/notebooks/internal/gradgraph"
)

// Tensor is a generic tensor with element type T and backend B.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
//	result := t.Add(t)
type Tensor[T DType, B Backend] struct {
	raw     *RawTensor
	backend B
	grad    *Tensor[T, B]
}

// New creates a Tensor from a RawTensor and backend.
func New[T DType, B Backend](raw *RawTensor, b B) *Tensor[T, B] {
	return &Tensor[T, B]{
		raw:     raw,
		backend: b,
	}
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice[T DType, B Backend](data []T, shape Shape, b B) (*Tensor[T, B], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	raw, err := NewRaw(shape, DataTypeOf[T](), b.Device())
	if err != nil {
		return nil, err
	}

	t := New[T, B](raw, b)
	copy(t.Data(), data)

	return t, nil
}

// Shape returns the tensor's shape.
func (t *Tensor[T, B]) Shape() Shape {
	return t.raw.Shape()
}

// DType returns the tensor's data type.
func (t *Tensor[T, B]) DType() DataType {
	return t.raw.DType()
}

// Device returns the tensor's compute device.
func (t *Tensor[T, B]) Device() Device {
	return t.raw.Device()
}

// NumElements returns the total number of elements.
func (t *Tensor[T, B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[T, B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor[T, B]) Backend() B {
	return t.backend
}

// Grad returns the gradient tensor, if one was assigned after a backward pass.
func (t *Tensor[T, B]) Grad() *Tensor[T, B] {
	return t.grad
}

// SetGrad sets the gradient tensor.
func (t *Tensor[T, B]) SetGrad(grad *Tensor[T, B]) {
	t.grad = grad
}

// Data returns a typed slice view of the tensor's data (zero-copy).
//
// WARNING: Modifications to the returned slice will modify the tensor.
func (t *Tensor[T, B]) Data() []T {
	return AsSlice[T](t.raw)
}

// Item returns the value of a single-element tensor.
// Panics if the tensor has more than one element.
func (t *Tensor[T, B]) Item() T {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.Shape()))
	}
	return t.Data()[0]
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T, B]) At(indices ...int) T {
	return t.Data()[t.offset(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (t *Tensor[T, B]) Set(value T, indices ...int) {
	t.Data()[t.offset(indices)] = value
}

func (t *Tensor[T, B]) offset(indices []int) int {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(indices)))
	}

	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}
	return offset
}

// RequireGrad marks this tensor as a tracked leaf. Operations recorded by an
// autodiff backend on tracked tensors produce tracked results with a GradFn.
//
// Returns the tensor itself for method chaining.
func (t *Tensor[T, B]) RequireGrad() *Tensor[T, B] {
	t.raw.SetRequiresGrad(true)
	return t
}

// RequiresGrad returns true if this tensor is tracked for differentiation.
func (t *Tensor[T, B]) RequiresGrad() bool {
	return t.raw.RequiresGrad()
}

// GradFn returns the backward node that produced this tensor.
//
// It is nil for leaves, for untracked tensors, and for tensors created on a
// backend that does not record provenance. A nil tensor has no node.
func (t *Tensor[T, B]) GradFn() *gradgraph.Node {
	if t == nil {
		return nil
	}
	p, ok := any(t.backend).(GradFnProvider)
	if !ok {
		return nil
	}
	return p.GradFn(t.raw)
}

// IsLeaf reports whether the tensor was not produced by a recorded operation.
func (t *Tensor[T, B]) IsLeaf() bool {
	return t.GradFn() == nil
}

// Detach returns a tensor that shares the same data but is not tracked.
// Operations on the detached tensor do not link back to this one.
func (t *Tensor[T, B]) Detach() *Tensor[T, B] {
	view := *t.raw
	view.requiresGrad = false
	return New[T, B](&view, t.backend)
}

// Clone creates a deep, untracked copy of the tensor.
func (t *Tensor[T, B]) Clone() *Tensor[T, B] {
	return New[T, B](t.raw.Clone(), t.backend)
}

// String renders the values in the conventional tensor(...) layout,
// followed by provenance: grad_fn for produced tensors and requires_grad
// for tracked leaves.
func (t *Tensor[T, B]) String() string {
	var suffix string
	switch fn := t.GradFn(); {
	case fn != nil:
		suffix = fmt.Sprintf("grad_fn=<%s>", fn.Name())
	case t.RequiresGrad():
		suffix = "requires_grad=True"
	}
	return Format(t.raw, suffix)
}
