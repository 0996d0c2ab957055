package nn

import (
	"fmt"

	"github.com/born-ml/notebooks/internal/tensor"
)

// L1Loss computes Mean Absolute Error loss.
//
// Loss = mean(|predictions - targets|)
//
// On an autodiff backend the loss records MeanBackward0, AbsBackward0 and
// SubBackward0, in that order from the root.
type L1Loss[B tensor.Backend] struct{}

// NewL1Loss creates a new L1 loss function.
func NewL1Loss[B tensor.Backend]() *L1Loss[B] {
	return &L1Loss[B]{}
}

// Forward computes the L1 loss as a 0-D tensor.
func (l *L1Loss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	checkLossShapes("L1Loss", predictions, targets)
	return predictions.Sub(targets).Abs().Mean()
}

// MSELoss computes Mean Squared Error loss.
//
// Loss = mean((predictions - targets)²)
//
// Example:
//
//	mse := nn.NewMSELoss[Backend]()
//	loss := mse.Forward(model.Forward(input), targets)
type MSELoss[B tensor.Backend] struct{}

// NewMSELoss creates a new MSE loss function.
func NewMSELoss[B tensor.Backend]() *MSELoss[B] {
	return &MSELoss[B]{}
}

// Forward computes the MSE loss as a 0-D tensor.
func (m *MSELoss[B]) Forward(predictions, targets *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	checkLossShapes("MSELoss", predictions, targets)
	diff := predictions.Sub(targets)
	return diff.Mul(diff).Mean()
}

func checkLossShapes[B tensor.Backend](name string, predictions, targets *tensor.Tensor[float32, B]) {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("%s: predictions %v and targets %v must have the same shape",
			name, predictions.Shape(), targets.Shape()))
	}
}
