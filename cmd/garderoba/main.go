// Command garderoba is the cloakroom counter: it registers people, deposits
// items into cells and hands them back.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/erazemk/garderoba/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		if isNotFound(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// run executes one command line. A failure is logged while the log file is
// still open and then returned for the exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &app{v: config.New()}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		slog.Error("command failed", "error", err)
	}
	if cerr := a.closeStore(); cerr != nil {
		slog.Error("closing store", "error", cerr)
		if err == nil {
			err = cerr
		}
	}
	a.closeLogFile()
	return err
}
