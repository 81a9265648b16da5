package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

func runBatch(args []string, stdout, stderr io.Writer) error {
	var (
		f    renderFlags
		out  string
		jobs int
	)

	fs := newFlagSet("batch", "<in.wav> ...", stderr)
	f.knobFlags.register(fs)
	f.register(fs)
	fs.StringVar(&out, "out", "rendered", "output directory")
	fs.IntVar(&jobs, "jobs", runtime.NumCPU(), "files rendered concurrently")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	paths, err := expandPaths(append([]string{out}, fs.Args()...))
	if err != nil {
		return err
	}

	out = paths[0]
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}

	n, err := renderBatch(context.Background(), paths[1:], out, jobs, &f, f.logger(stderr))
	_, _ = fmt.Fprintf(stdout, "rendered %d of %d files into %s\n", n, fs.NArg(), out)

	return err
}

// renderBatch renders every input into dir as wav, at most jobs at a time.
// Each file gets its own processor; the first failure cancels files not yet
// started.
func renderBatch(ctx context.Context, inputs []string, dir string, jobs int, f *renderFlags, logger *slog.Logger) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))

	outputs := outputNames(inputs)
	done := make([]bool, len(inputs))

	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out := filepath.Join(dir, outputs[i])
			if err := renderFile(in, out, f, logger.With(slog.Int("job", i))); err != nil {
				return err
			}

			done[i] = true

			return nil
		})
	}

	err := g.Wait()

	n := 0
	for _, ok := range done {
		if ok {
			n++
		}
	}

	return n, err
}

// outputNames maps each input to a distinct ".wav" file name. Inputs that
// share a stem, such as dir1/take.wav and dir2/take.mp3, get "-1", "-2"
// suffixes in argument order. Names are compared case-insensitively.
func outputNames(inputs []string) []string {
	names := make([]string, len(inputs))
	used := make(map[string]bool, len(inputs))

	for i, in := range inputs {
		base := filepath.Base(in)
		stem := strings.TrimSuffix(base, filepath.Ext(base))

		name := stem + ".wav"
		for n := 1; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s-%d.wav", stem, n)
		}

		used[strings.ToLower(name)] = true
		names[i] = name
	}

	return names
}
