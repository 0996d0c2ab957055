package notebook

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAutograd(t *testing.T, cfg AutogradConfig) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, AutogradNotebook(cfg).Run(&buf))
	return buf.String()
}

func TestAutogradNotebook_Default(t *testing.T) {
	out := runAutograd(t, DefaultAutogradConfig())

	assert.Equal(t,
		"weight = tensor([0.5000], requires_grad=True)\n"+
			"bias = tensor([0.1000], requires_grad=True)\n",
		cellOutput(t, out, "Model y = w*x + b"))

	assert.Equal(t,
		"x = tensor([2.0000])\n"+
			"y = tensor([1.1000], grad_fn=<AddBackward0>)\n",
		cellOutput(t, out, "Forward pass"))

	assert.Equal(t,
		"y.grad_fn = <AddBackward0>\n"+
			"AddBackward0\n"+
			"    MulBackward0\n"+
			"        AccumulateGrad\n"+
			"    AccumulateGrad\n",
		cellOutput(t, out, "Graph of y"))

	assert.Equal(t,
		"x.requires_grad = True\n"+
			"y = tensor([1.1000], grad_fn=<AddBackward0>)\n"+
			"AddBackward0\n"+
			"    MulBackward0\n"+
			"        AccumulateGrad\n"+
			"        AccumulateGrad\n"+
			"    AccumulateGrad\n",
		cellOutput(t, out, "Toggling input tracking"))

	assert.Equal(t,
		"y_true = tensor([3.0000])\n"+
			"loss = tensor(1.9000, grad_fn=<MeanBackward0>)\n"+
			"MeanBackward0\n"+
			"    AbsBackward0\n"+
			"        SubBackward0\n"+
			"            AddBackward0\n"+
			"                MulBackward0\n"+
			"                    AccumulateGrad\n"+
			"                AccumulateGrad\n",
		cellOutput(t, out, "L1 loss"))

	assert.Equal(t,
		"weight.grad = tensor([-2.0000])\n"+
			"bias.grad = tensor([-1.0000])\n"+
			"x.grad = None\n",
		cellOutput(t, out, "Backward pass"))

	assert.Equal(t,
		"untracked tensor: \"\"\n"+
			"parameter leaf:   \"\"\n"+
			"plain number:     \"\"\n",
		cellOutput(t, out, "Values without provenance"))

	linear := cellOutput(t, out, "Linear layer for comparison")
	assert.True(t, strings.HasSuffix(linear,
		"AddBackward0\n"+
			"    MmBackward0\n"+
			"        TBackward0\n"+
			"            AccumulateGrad\n"+
			"    ViewBackward0\n"+
			"        AccumulateGrad\n"), linear)

	assert.NotContains(t, out, "Graphviz export")
}

func TestAutogradNotebook_TrackedInput(t *testing.T) {
	cfg := DefaultAutogradConfig()
	cfg.TrackInput = true
	out := runAutograd(t, cfg)

	assert.Equal(t,
		"x = tensor([2.0000], requires_grad=True)\n"+
			"y = tensor([1.1000], grad_fn=<AddBackward0>)\n",
		cellOutput(t, out, "Forward pass"))

	assert.Contains(t, cellOutput(t, out, "Graph of y"),
		"    MulBackward0\n        AccumulateGrad\n        AccumulateGrad\n")

	toggled := cellOutput(t, out, "Toggling input tracking")
	assert.Contains(t, toggled, "x.requires_grad = False\n")
	assert.Contains(t, toggled, "    MulBackward0\n        AccumulateGrad\n    AccumulateGrad\n")

	// d|w*x + b - t|/dx = -w
	assert.Contains(t, cellOutput(t, out, "Backward pass"), "x.grad = tensor([-0.5000])\n")
}

func TestAutogradNotebook_Seeded(t *testing.T) {
	cfg := DefaultAutogradConfig()
	cfg.Seed = 42

	first := runAutograd(t, cfg)
	second := runAutograd(t, cfg)

	assert.Equal(t, first, second, "a fixed seed reproduces the run")
	assert.NotContains(t, cellOutput(t, first, "Model y = w*x + b"), "tensor([0.5000]")
}

func TestAutogradNotebook_DOT(t *testing.T) {
	var dot bytes.Buffer
	cfg := DefaultAutogradConfig()
	cfg.DOT = &dot

	out := runAutograd(t, cfg)

	assert.Equal(t, "loss graph written\n", cellOutput(t, out, "Graphviz export"))
	assert.True(t, strings.HasPrefix(dot.String(), "digraph gradfn {\n"))
	assert.Contains(t, dot.String(), `label="MeanBackward0"`)
	assert.Contains(t, dot.String(), `label="AccumulateGrad", shape=ellipse`)
}
