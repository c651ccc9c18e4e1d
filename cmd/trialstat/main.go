// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Trialstat computes statistical summaries of LoopScheduler benchmark
// logs.
//
// Usage:
//
//	trialstat [flags] [files...]
//
// Each input file should be the output of one of the LoopScheduler
// test programs: some free-form preamble, followed by repeated trial
// blocks, each introduced by a "Test <n>:" line (n counting up from
// 0) and containing lines that end in a number. For example, the file
// seq.txt contains:
//
//	threads: 4
//	modules: 8
//
//	Test 0:
//
//	LoopScheduler: Total time: 1.25
//	Efficiency: 0.9
//
//	Test 1:
//
//	LoopScheduler: Total time: 1.5
//	Efficiency: 0.8
//
//	Test 2:
//
//	LoopScheduler: Total time: 1.75
//	Efficiency: 1
//
// For every line of the first trial, trialstat collects the value at
// the same position in every trial and prints its mean, median and
// sample standard deviation:
//
//	$ trialstat seq.txt
//
//	Population: 3
//
//	threads: 4
//	modules: 8
//
//	LoopScheduler: Total time: Mean: 1.5
//	                           Median: 1.5
//	                           STDev: 0.25
//
//	Efficiency: Mean: 0.9
//	            Median: 0.9
//	            STDev: 0.09999999999999998
//
// Values are matched to labels by position, not by name. Trials with
// more values than the first trial have the extra values ignored, and
// trials with fewer values contribute nothing to the missing labels.
// The --strict flag turns such trials into an error.
//
// With no file arguments, trialstat prompts for a filename, reports
// on it, and prompts again until interrupted or the input ends. A log
// with no trials prints "0 Count, skipping...".
//
// The --format flag selects the output: "text" is the report above,
// "csv" is one summary row per label, and "trials" is one row per
// trial with a column per label, suitable for plotting.
package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/loopscheduler/trialstat/cmd/trialstat/internal/trialtab"
	"github.com/loopscheduler/trialstat/trialfmt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := trialstat(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "trialstat: %s\n", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// A usageError is a problem with the command line.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// trialstat runs the command with the given arguments. It returns nil
// when ctx is canceled, which is how an interrupt ends the prompt
// loop.
func trialstat(ctx context.Context, stdin io.Reader, w, wErr io.Writer, args []string) error {
	var (
		flagConfig    string
		flagVerbose   bool
		flagFormat    string
		flagStrict    bool
		flagFilter    string
		flagKeepGoing bool
	)
	cmd := &cobra.Command{
		Use:   "trialstat [flags] [files...]",
		Short: "Summarize LoopScheduler benchmark logs",
		Long: `trialstat computes the mean, median and sample standard deviation
of every value in a LoopScheduler benchmark log, across all of the log's
trials. With no file arguments, it prompts for filenames until
interrupted.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			if flagConfig != "" {
				var err error
				if cfg, err = LoadConfig(flagConfig); err != nil {
					return err
				}
			}
			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.Format = flagFormat
			}
			if flags.Changed("strict") {
				cfg.Strict = flagStrict
			}
			if flags.Changed("filter") {
				cfg.Filter = flagFilter
			}
			if flags.Changed("keep-going") {
				cfg.KeepGoing = flagKeepGoing
			}
			if flagVerbose {
				cfg.LogLevel = "debug"
			}
			if err := cfg.Validate(); err != nil {
				return usageError{err}
			}

			logger := newLogger(wErr, cfg.level)
			defer logger.Sync()

			s := &shell{cfg: cfg, in: stdin, out: w, errOut: wErr, log: logger}
			return s.run(cmd.Context(), args)
		},
	}
	if args == nil {
		// cobra falls back to os.Args for nil.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(w)
	cmd.SetErr(wErr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVar(&flagConfig, "config", "", "read configuration from YAML `file`")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "log debugging information to stderr")
	flags.StringVarP(&flagFormat, "format", "f", "text", "print results in `format`:\n  text   - summary report\n  csv    - one row of statistics per label\n  trials - one row of values per trial")
	flags.BoolVar(&flagStrict, "strict", false, "reject trials with a different number of values than the first trial")
	flags.StringVar(&flagFilter, "filter", "", "report only labels matching `regexp`")
	flags.BoolVarP(&flagKeepGoing, "keep-going", "k", false, "report errors and continue with the next file")

	return cmd.ExecuteContext(ctx)
}

func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core).Named("trialstat")
}

// A shell reads filenames and prints a report for each.
type shell struct {
	cfg    *Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	log    *zap.Logger
}

func (s *shell) run(ctx context.Context, files []string) error {
	if len(files) > 0 {
		for _, name := range files {
			if ctx.Err() != nil {
				fmt.Fprintln(s.out)
				return nil
			}
			if err := s.handle(name); err != nil {
				return err
			}
		}
		return nil
	}

	// Stop the filename reader when we return.
	stop := make(chan struct{})
	defer close(stop)

	var scanErr error
	names := make(chan string)
	go func() {
		defer close(names)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case names <- sc.Text():
			case <-stop:
				return
			}
		}
		scanErr = sc.Err()
	}()

	for {
		fmt.Fprint(s.out, s.cfg.Prompt)
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case name, ok := <-names:
			if !ok {
				fmt.Fprintln(s.out)
				if scanErr != nil {
					return fmt.Errorf("reading filename: %w", scanErr)
				}
				return nil
			}
			// select picks at random when both are ready.
			if ctx.Err() != nil {
				fmt.Fprintln(s.out)
				return nil
			}
			if err := s.handle(name); err != nil {
				return err
			}
		}
	}
}

// handle processes one file, applying the keep-going policy to any
// error.
func (s *shell) handle(name string) error {
	err := s.process(name)
	if err == nil || !s.cfg.KeepGoing {
		return err
	}
	fmt.Fprintf(s.errOut, "trialstat: %s\n", err)
	return nil
}

// process reads the trial log in file name and prints its report.
// Nothing is printed if the log cannot be fully read and summarized.
func (s *shell) process(name string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	s.log.Debug("read trial log", zap.String("file", name), zap.Int("bytes", len(data)))

	r := trialfmt.NewReader(bytes.NewReader(data), name, trialfmt.Strict(s.cfg.Strict))
	var (
		b   *trialtab.Builder
		buf bytes.Buffer
		tw  *trialfmt.Writer
	)
	for r.Scan() {
		if b == nil {
			b = trialtab.NewBuilder(r.Labels(), trialtab.Filter(s.cfg.filter))
			if s.cfg.Format == "trials" {
				tw = trialfmt.NewWriter(&buf, r.Labels())
			}
		}
		b.Add(r.Trial())
		if tw != nil {
			if err := tw.Write(r.Trial()); err != nil {
				return err
			}
		}
	}
	if err := r.Err(); err != nil {
		return err
	}

	if b == nil {
		s.log.Debug("no trials", zap.String("file", name), zap.Int("preamble", len(r.Preamble())))
		_, err := fmt.Fprintln(s.out, trialtab.Skipped)
		return err
	}
	s.log.Debug("parsed trial log",
		zap.String("file", name),
		zap.Int("trials", b.Count()),
		zap.Int("labels", len(r.Labels())),
		zap.Int("preamble", len(r.Preamble())))
	if m := b.Mismatched(); len(m) > 0 {
		s.log.Warn("trials differ in shape from the first trial",
			zap.String("file", name),
			zap.Ints("trials", m),
			zap.Int("labels", len(r.Labels())))
	}

	if tw != nil {
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := s.out.Write(buf.Bytes())
		return err
	}

	table, err := b.ToTable(r.Preamble())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if s.cfg.Format == "csv" {
		return table.ToCSV(s.out)
	}
	return table.ToText(s.out)
}
