// Package main runs the autograd and matmul notebooks.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/born-ml/notebooks/internal/backend/cpu"
	"github.com/born-ml/notebooks/internal/notebook"
)

const version = "v0.1.0-dev"

func main() {
	log.SetFlags(0)

	defaults := notebook.DefaultAutogradConfig()
	seed := flag.Int64("seed", 0, "Draw w and b from this seed (0 = fixed w=0.5, b=0.1)")
	x := flag.Float64("x", float64(defaults.X), "Model input x")
	target := flag.Float64("target", float64(defaults.Target), "Target y_true for the L1 loss")
	trackInput := flag.Bool("track-input", false, "Track x for differentiation")
	dotPath := flag.String("dot", "", "Also write the loss graph in Graphviz DOT format to this file")
	flag.Usage = usage
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		usage()
		os.Exit(2)
	}
	if cmd == "version" {
		fmt.Printf("notebooks %s\n", version)
		return
	}

	cfg := defaults
	cfg.Seed = *seed
	cfg.X = float32(*x)
	cfg.Target = float32(*target)
	cfg.TrackInput = *trackInput

	written, err := runWithDOT(os.Stdout, cmd, cfg, *dotPath)
	if err != nil {
		log.Fatalf("notebooks: %v", err)
	}
	if written {
		log.Printf("Loss graph written to %s", *dotPath)
	}
}

// runWithDOT runs cmd and, when dotPath is set and cmd includes the
// autograd notebook, writes the loss graph to dotPath. It reports whether
// the file was written.
func runWithDOT(w io.Writer, cmd string, cfg notebook.AutogradConfig, dotPath string) (bool, error) {
	if dotPath == "" || !usesAutograd(cmd) {
		return false, run(w, cmd, cfg)
	}

	f, err := os.Create(dotPath)
	if err != nil {
		return false, fmt.Errorf("create DOT file: %w", err)
	}
	cfg.DOT = f

	runErr := run(w, cmd, cfg)
	closeErr := f.Close()
	if runErr != nil {
		return false, runErr
	}
	if closeErr != nil {
		return false, fmt.Errorf("close DOT file: %w", closeErr)
	}
	return true, nil
}

func usesAutograd(cmd string) bool {
	return cmd == "autograd" || cmd == "all"
}

func run(w io.Writer, cmd string, cfg notebook.AutogradConfig) error {
	var books []*notebook.Notebook
	switch cmd {
	case "autograd":
		books = append(books, notebook.AutogradNotebook(cfg))
	case "matmul":
		books = append(books, notebook.MatmulNotebook(cpu.New()))
	case "all":
		books = append(books, notebook.AutogradNotebook(cfg), notebook.MatmulNotebook(cpu.New()))
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}

	for i, nb := range books {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := nb.Run(w); err != nil {
			return err
		}
	}
	return nil
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "notebooks %s - autograd and matmul notebooks\n\n", version)
	fmt.Fprintln(out, "Usage: notebooks [flags] <command>")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  autograd   Print the provenance graph of y = w*x + b and its L1 loss")
	fmt.Fprintln(out, "  matmul     Compare Mul, MatMul, BatchMatMul and BroadcastMatMul")
	fmt.Fprintln(out, "  all        Run both notebooks")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
}
