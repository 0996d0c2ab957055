package autodiff

import (
	"github.com/born-ml/notebooks/internal/autodiff/ops"
	"github.com/born-ml/notebooks/internal/gradgraph"
	"github.com/born-ml/notebooks/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic
// differentiation.
//
// A tape is not safe for concurrent use.
type GradientTape struct {
	operations []ops.Operation                   // in execution order
	producers  map[*tensor.RawTensor]ops.Operation // output -> operation
	recording  bool

	// Provenance arena, grown as operations are recorded.
	graph  *gradgraph.Graph
	nodes  map[*tensor.RawTensor]*gradgraph.Node // output -> backward node
	leaves map[*tensor.RawTensor]*gradgraph.Node // tracked leaf -> AccumulateGrad
}

// NewGradientTape creates a new, non-recording gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64),
		producers:  make(map[*tensor.RawTensor]ops.Operation),
		graph:      gradgraph.New(),
		nodes:      make(map[*tensor.RawTensor]*gradgraph.Node),
		leaves:     make(map[*tensor.RawTensor]*gradgraph.Node),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *GradientTape) Record(op ops.Operation) {
	if !t.recording {
		return
	}
	t.operations = append(t.operations, op)
	t.producers[op.Output()] = op
	t.addNode(op.Name(), op.Inputs(), op.Output())
}

// Clear removes all recorded operations and their provenance graph.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
	clear(t.producers)
	t.graph = gradgraph.New()
	clear(t.nodes)
	clear(t.leaves)
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Operations returns the recorded operations in execution order.
// The returned slice must not be modified.
func (t *GradientTape) Operations() []ops.Operation {
	return t.operations
}

// Producer returns the operation that produced raw, if it was recorded.
func (t *GradientTape) Producer(raw *tensor.RawTensor) (ops.Operation, bool) {
	op, ok := t.producers[raw]
	return op, ok
}

// Backward computes gradients of output by walking the tape in reverse.
//
// outputGrad seeds the gradient of output (ones for a scalar loss).
// Operations whose output received no gradient are skipped; gradients of
// tensors used several times are summed. Only tracked tensors receive
// gradients.
//
// Returns a map from RawTensor to its accumulated gradient.
func (t *GradientTape) Backward(output, outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.operations) == 0 {
		return grads
	}

	// Gradient kernels must not land on the tape.
	wasRecording := t.recording
	t.recording = false
	defer func() {
		t.recording = wasRecording
	}()

	grads[output] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		opGrad, ok := grads[op.Output()]
		if !ok {
			continue
		}
		inputGrads := op.Backward(opGrad, backend)
		t.accumulateGrads(op, inputGrads, grads, backend)
	}

	return grads
}

// accumulateGrads adds each input gradient into grads.
func (t *GradientTape) accumulateGrads(
	op ops.Operation,
	inputGrads []*tensor.RawTensor,
	grads map[*tensor.RawTensor]*tensor.RawTensor,
	backend tensor.Backend,
) {
	for j, input := range op.Inputs() {
		if j >= len(inputGrads) || inputGrads[j] == nil || !input.RequiresGrad() {
			continue
		}
		if existing, ok := grads[input]; ok {
			grads[input] = backend.Add(existing, inputGrads[j])
		} else {
			grads[input] = inputGrads[j]
		}
	}
}
