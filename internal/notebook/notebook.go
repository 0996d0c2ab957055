// Package notebook holds the two demonstration notebooks: autograd, which
// prints the provenance graph an autodiff backend records for a small model
// and its loss, and matmul, which compares the multiplication entry points of
// the tensor package.
//
// A notebook is an ordered list of cells that write to an io.Writer. Cells
// share state through closures, so they must run in order.
package notebook

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Cell is one step of a notebook.
type Cell struct {
	Title string
	Run   func(w io.Writer) error
}

// Notebook is a titled, ordered list of cells.
type Notebook struct {
	Title string
	Cells []Cell
}

// Run executes every cell in order, writing a header before each one.
// It stops at the first cell that fails. A panicking cell is reported as an
// error rather than crashing the caller.
func (nb *Notebook) Run(w io.Writer) error {
	fmt.Fprintf(w, "== %s ==\n", nb.Title)
	for i, cell := range nb.Cells {
		fmt.Fprintf(w, "\n[%d] %s\n", i+1, cell.Title)
		if err := runCell(cell, w); err != nil {
			return errors.Wrapf(err, "%s: cell %d (%s)", nb.Title, i+1, cell.Title)
		}
	}
	return nil
}

func runCell(cell Cell, w io.Writer) (err error) {
	if cell.Run == nil {
		return nil
	}
	if perr := catch(func() { err = cell.Run(w) }); perr != nil {
		return perr
	}
	return err
}

// catch runs f and turns a panic into an error. Kernels panic on shape and
// dtype misuse.
func catch(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("panic: %v", r)
		}
	}()
	f()
	return nil
}
