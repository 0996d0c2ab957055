package notebook

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/born-ml/notebooks/internal/autodiff"
	"github.com/born-ml/notebooks/internal/backend/cpu"
	"github.com/born-ml/notebooks/internal/gradgraph"
	"github.com/born-ml/notebooks/internal/nn"
	"github.com/born-ml/notebooks/internal/tensor"
	"github.com/pkg/errors"
)

// Backend is the autodiff backend the autograd notebook records on.
type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// AutogradConfig configures the autograd notebook.
type AutogradConfig struct {
	// Seed draws w and b from U(-1, 1) when non-zero; zero uses Weight and Bias.
	Seed   int64
	Weight float32
	Bias   float32

	X      float32 // model input
	Target float32 // y_true for the L1 loss

	// TrackInput marks x as requiring gradients, which adds a leaf marker
	// under MulBackward0.
	TrackInput bool

	// DOT, when set, receives the loss graph in Graphviz format.
	DOT io.Writer
}

// DefaultAutogradConfig returns w=0.5, b=0.1, x=2 and y_true=3.
func DefaultAutogradConfig() AutogradConfig {
	return AutogradConfig{
		Weight: 0.5,
		Bias:   0.1,
		X:      2,
		Target: 3,
	}
}

// autogradState is what the cells hand to each other.
type autogradState struct {
	cfg     AutogradConfig
	backend Backend
	model   *nn.Affine[Backend]
	x       *tensor.Tensor[float32, Backend]
	y       *tensor.Tensor[float32, Backend]
	loss    *tensor.Tensor[float32, Backend]
}

// AutogradNotebook walks a forward pass of y = w*x + b and an L1 loss,
// printing the recorded provenance graph at each stage, then runs the
// backward pass.
func AutogradNotebook(cfg AutogradConfig) *Notebook {
	s := &autogradState{cfg: cfg}

	cells := []Cell{
		{Title: "Model y = w*x + b", Run: s.buildModel},
		{Title: "Forward pass", Run: s.forward},
		{Title: "Graph of y", Run: s.printGraph},
		{Title: "Toggling input tracking", Run: s.toggleInput},
		{Title: "L1 loss", Run: s.l1Loss},
		{Title: "Backward pass", Run: s.backward},
		{Title: "Values without provenance", Run: s.untracked},
		{Title: "Linear layer for comparison", Run: s.linear},
	}
	if cfg.DOT != nil {
		cells = append(cells, Cell{Title: "Graphviz export", Run: s.exportDOT})
	}

	return &Notebook{Title: "Autograd", Cells: cells}
}

func (s *autogradState) buildModel(w io.Writer) error {
	s.backend = autodiff.New(cpu.New())
	s.backend.Tape().StartRecording()

	if s.cfg.Seed != 0 {
		s.model = nn.NewRandomAffine(rand.New(rand.NewSource(s.cfg.Seed)), s.backend)
	} else {
		s.model = nn.NewAffine(s.cfg.Weight, s.cfg.Bias, s.backend)
	}

	for _, p := range s.model.Parameters() {
		fmt.Fprintf(w, "%s = %v\n", p.Name(), p.Tensor())
	}
	return nil
}

func (s *autogradState) forward(w io.Writer) error {
	s.x = s.input(s.cfg.TrackInput)
	s.y = s.model.Forward(s.x)

	fmt.Fprintf(w, "x = %v\n", s.x)
	fmt.Fprintf(w, "y = %v\n", s.y)
	return nil
}

func (s *autogradState) input(track bool) *tensor.Tensor[float32, Backend] {
	x := tensor.Full[float32](tensor.Shape{1}, s.cfg.X, s.backend)
	if track {
		x.RequireGrad()
	}
	return x
}

func (s *autogradState) printGraph(w io.Writer) error {
	fmt.Fprintf(w, "y.grad_fn = <%v>\n", s.y.GradFn())
	gradgraph.Print(w, s.y)
	return nil
}

func (s *autogradState) toggleInput(w io.Writer) error {
	track := !s.cfg.TrackInput
	x := s.input(track)
	y := s.model.Forward(x)

	fmt.Fprintf(w, "x.requires_grad = %v\n", boolText(track))
	fmt.Fprintf(w, "y = %v\n", y)
	gradgraph.Print(w, y)
	return nil
}

func (s *autogradState) l1Loss(w io.Writer) error {
	target := tensor.Full[float32](tensor.Shape{1}, s.cfg.Target, s.backend)
	s.loss = nn.NewL1Loss[Backend]().Forward(s.y, target)

	fmt.Fprintf(w, "y_true = %v\n", target)
	fmt.Fprintf(w, "loss = %v\n", s.loss)
	gradgraph.Print(w, s.loss)
	return nil
}

func (s *autogradState) backward(w io.Writer) error {
	grads := autodiff.Backward(s.loss, s.backend)
	params := s.model.Parameters()
	nn.CollectGrads(grads, params)
	autodiff.ApplyGrads(grads, s.x)

	for _, p := range params {
		if p.Grad() == nil {
			return errors.Errorf("parameter %s received no gradient", p.Name())
		}
		fmt.Fprintf(w, "%s.grad = %v\n", p.Name(), p.Grad())
	}
	if g := s.x.Grad(); g != nil {
		fmt.Fprintf(w, "x.grad = %v\n", g)
	} else {
		fmt.Fprintln(w, "x.grad = None")
	}
	return nil
}

func (s *autogradState) untracked(w io.Writer) error {
	plain := tensor.Full[float32](tensor.Shape{1}, s.cfg.X, s.backend)
	fmt.Fprintf(w, "untracked tensor: %q\n", gradgraph.Sprint(plain))
	fmt.Fprintf(w, "parameter leaf:   %q\n", gradgraph.Sprint(s.model.Weight().Tensor()))
	fmt.Fprintf(w, "plain number:     %q\n", gradgraph.Sprint(42))
	return nil
}

func (s *autogradState) linear(w io.Writer) error {
	seed := s.cfg.Seed
	if seed == 0 {
		seed = 1
	}
	layer := nn.NewLinear(rand.New(rand.NewSource(seed)), 1, 1, s.backend)
	y := layer.Forward(s.input(false).Reshape(1, 1))

	fmt.Fprintf(w, "y = %v\n", y)
	gradgraph.Print(w, y)
	return nil
}

func (s *autogradState) exportDOT(w io.Writer) error {
	if err := gradgraph.WriteDOT(s.cfg.DOT, s.loss.GradFn()); err != nil {
		return errors.Wrap(err, "write dot")
	}
	fmt.Fprintln(w, "loss graph written")
	return nil
}

func boolText(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
