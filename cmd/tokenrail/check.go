package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tokenrail/internal/config"
	"tokenrail/internal/logging"
	"tokenrail/internal/tools"
)

var watchManifest bool

var checkCmd = &cobra.Command{
	Use:   "check [transcript]",
	Short: "Validate a reasoning transcript against the manifest grammar",
	Long: `Incrementally validates a transcript (file argument, or stdin when
omitted) against the step grammar built from the capability manifest.

The transcript is consumed in arbitrary chunks exactly as a sampler would
produce it. Observation and Question lines are treated as loop output and
skipped; every other line must open a valid Thought, Action, or Final-Answer
step. A transcript that ends mid-step fails, and the error reports the byte
prefix any valid continuation had to start with.

With --watch, the manifest is watched and the transcript is revalidated
whenever the manifest changes, since grammars bake in capability names and
instructions and must be rebuilt after any edit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVarP(&watchManifest, "watch", "w", false, "revalidate whenever the manifest changes")
}

func runCheck(cmd *cobra.Command, args []string) error {
	manifest, err := config.Load(manifestPath)
	if err != nil {
		return err
	}
	if manifest.Logging.Verbose && !verbose {
		if err := logging.Init(true); err != nil {
			return err
		}
	}

	if !watchManifest {
		var in io.Reader = cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}
		return checkStream(manifest.Registry(), in, cmd.OutOrStdout())
	}

	if len(args) == 0 {
		return errors.New("--watch requires a transcript file argument")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func(m *config.Manifest) {
		if err := checkFile(m.Registry(), args[0], cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "invalid: %v\n", err)
		}
	}
	runOnce(manifest)

	watcher, err := config.NewWatcher(manifestPath, runOnce)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	<-ctx.Done()
	return nil
}

func checkFile(reg *tools.Registry, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return checkStream(reg, f, out)
}

// checkStream validates one transcript stream, reading in fixed-size chunks
// to exercise the incremental contract the same way a sampler does.
func checkStream(reg *tools.Registry, in io.Reader, out io.Writer) error {
	log := logging.L(logging.SubsystemCLI).With(zap.String("session", uuid.NewString()))

	checker, err := newTranscriptChecker(reg, out, log)
	if err != nil {
		return err
	}

	buf := make([]byte, 4096)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if ferr := checker.feed(buf[:n]); ferr != nil {
				return ferr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}

	if err := checker.finish(); err != nil {
		return err
	}
	log.Info("transcript valid", zap.Int("steps", checker.steps))
	return nil
}
