// Package main implements sigread, which installs an interrupt handler,
// performs a single blocking read from standard input, and echoes whatever
// that read returned to standard output.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/urfave/cli/v3"
	rootpkg "tools.zach/dev/sigread"
	"tools.zach/dev/sigread/internal/atomicfile"
	"tools.zach/dev/sigread/internal/config"
	"tools.zach/dev/sigread/internal/logger"
	"tools.zach/dev/sigread/internal/paths"
	"tools.zach/dev/sigread/internal/sigread"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

// resolveVersion returns [version] when it was set via ldflags, otherwise a
// "dev+<hash>" tag built from the VCS info embedded by the Go toolchain.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Exit Status
// ///////////////////////////////////////////////

// registerFailedMsg is the fixed diagnostic line for a failed signal
// registration.
const registerFailedMsg = "failed sigaction"

// exitError carries a process exit status and the line to print to
// standard error.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func fatalf(format string, args ...any) error {
	return &exitError{code: 1, msg: fmt.Sprintf(format, args...)}
}

// ///////////////////////////////////////////////
// Environment
// ///////////////////////////////////////////////

// env holds the process streams and the signal hooks. Tests replace the
// hooks to deliver signals without signalling the test binary.
type env struct {
	stdin  *os.File
	stdout io.Writer
	stderr io.Writer
	notify func(c chan<- os.Signal, sig ...os.Signal)
	stop   func(c chan<- os.Signal)
}

// defaultDataDir returns ~/.sigread, or ./.sigread if the home directory
// cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", paths.DataDirRel)
	}
	return filepath.Join(home, paths.DataDirRel)
}

// ///////////////////////////////////////////////
// Main
// ///////////////////////////////////////////////

func main() {
	e := env{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(run(context.Background(), os.Args, e))
}

// run executes the command and returns the process exit status.
func run(ctx context.Context, args []string, e env) int {
	if err := newCommand(e).Run(ctx, args); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			fmt.Fprintln(e.stderr, ee.msg)
			return ee.code
		}
		fmt.Fprintf(e.stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// newCommand builds the root command. The CLI library's own exit handling
// is disabled so that run alone decides the exit status.
func newCommand(e env) *cli.Command {
	return &cli.Command{
		Name:            paths.BinaryName,
		Usage:           "Read once from stdin, echo it, and report interrupts",
		Version:         resolveVersion(),
		Writer:          e.stdout,
		ErrWriter:       e.stderr,
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Data directory for config and logs",
				Value: defaultDataDir(),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file path (default: <data-dir>/config.toml)",
			},
			&cli.BoolFlag{
				Name:  "write-config",
				Usage: "Write the default config file and exit",
			},
			&cli.BoolFlag{
				Name:  "log",
				Usage: "Log to <data-dir>/sigread.log when log.file is not set",
			},
		},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dataPaths := DataPaths{Root: cmd.String("data-dir")}
			cfgPath := cmd.String("config")
			if cfgPath == "" {
				cfgPath = dataPaths.Config()
			}
			if cmd.Bool("write-config") {
				return writeDefaultConfig(e.stdout, cfgPath)
			}
			return readAndEcho(ctx, e, dataPaths, cfgPath, cmd.Bool("log"))
		},
	}
}

// writeDefaultConfig copies the embedded default config to path, refusing
// to overwrite an existing file.
func writeDefaultConfig(stdout io.Writer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fatalf("fatal: create config dir: %v", err)
	}
	if err := atomicfile.WriteNew(path, rootpkg.DefaultConfigTOML, 0o644); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fatalf("config already exists: %s", path)
		}
		return fatalf("fatal: write config: %v", err)
	}
	fmt.Fprintf(stdout, "wrote %s\n", path)
	return nil
}

// ///////////////////////////////////////////////
// Read and Echo
// ///////////////////////////////////////////////

// readAndEcho installs the interrupt handler, performs the single read and
// echoes a positive count. Read failures, end of stream and interruption
// all end in a successful exit without output.
func readAndEcho(ctx context.Context, e env, dataPaths DataPaths, cfgPath string, forceLog bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fatalf("fatal: load config: %v", err)
	}

	log, logCloser, err := logger.NewLogger(logPath(dataPaths, cfg.Log, forceLog), logger.ParseLevel(cfg.Log.Level), cfg.Log.MaxSizeMB)
	if err != nil {
		return fatalf("fatal: init logger: %v", err)
	}
	defer logCloser.Close()

	log.Info("sigread starting", "version", resolveVersion(), "config", cfgPath)

	// Handler and echo share stdout.
	out := sigread.NewSyncWriter(e.stdout)

	reg, err := register(e, out, log, cfg.Read)
	if err != nil {
		logger.Fail(log, "signal registration failed", "signal", cfg.Read.Signal, "error", err)
		return &exitError{code: 1, msg: registerFailedMsg}
	}
	defer reg.Stop()

	src, restore, err := sigread.Pollable(e.stdin)
	if err != nil {
		log.Debug("stdin not pollable, an interrupt abandons the read", "error", err)
	}
	defer restore()

	buf := make([]byte, cfg.Read.BufferSize)
	logger.Trace(log, "read pending", "capacity", len(buf))
	res := sigread.ReadOnce(ctx, src, buf, reg.Interrupted())
	logRead(log, res)

	n, err := sigread.Echo(out, buf, res)
	if err != nil {
		log.Debug("echo write failed", "written", n, "error", err)
	}
	return nil
}

// logPath picks the log file: log.file when set, the data directory's
// default log when forced on, and "" (logging off) otherwise.
func logPath(dataPaths DataPaths, cfg config.LogConfig, force bool) string {
	if cfg.File != "" {
		return dataPaths.Resolve(cfg.File)
	}
	if force {
		return dataPaths.Log()
	}
	return ""
}

// register resolves the configured signal and installs a handler that
// prints cfg.Message to out on every delivery until the registration is
// stopped.
func register(e env, out io.Writer, log *slog.Logger, cfg config.ReadConfig) (*sigread.Registration, error) {
	sig, err := sigread.ParseSignal(cfg.Signal)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sigread.ErrRegister, err)
	}
	registrar := sigread.Registrar{Notify: e.notify, Stop: e.stop, Logger: log}
	return registrar.Register(sig, &sigread.MessageHandler{W: out, Message: cfg.Message})
}

// logRead records the outcome of the read.
func logRead(log *slog.Logger, res sigread.Result) {
	attrs := []any{"outcome", res.Outcome, "count", res.Count()}
	switch res.Outcome {
	case sigread.Interrupted:
		attrs = append(attrs, "signal", res.Signal)
	case sigread.Failed, sigread.Canceled:
		attrs = append(attrs, "error", res.Err)
	}
	log.Info("read finished", attrs...)
}
