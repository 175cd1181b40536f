// Command-line driver that reads extents of raw volumes described in a TOML file.
// Provides commands: version, info, read.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/janelia-flyem/rawvol/rawvol"
)

var (
	// Display usage if true.
	showHelp = flag.Bool("help", false, "")

	// Run in verbose mode if true.
	runVerbose = flag.Bool("verbose", false, "")

	// Number of logical CPUs to use, which also bounds the volumes read at once.
	useCPU = flag.Int("numcpu", 0, "")
)

const helpMessage = `
rawvol reads axis-aligned extents of raw, regular-grid scalar volumes

Usage: rawvol [options] <command>

      -numcpu     =number   Number of logical CPUs and concurrent volume reads.
      -verbose    (flag)    Run in verbose mode.
  -h, -help       (flag)    Show help message

Commands:

	version
	info <config.toml>    Show the layout and header size of each configured volume.
	read <config.toml>    Read each volume's read extent into the output directory.
`

var usage = func() {
	fmt.Print(helpMessage)
}

// numCPU is the number of volumes read at once.
var numCPU = 1

// Command is a command line split into arguments, the first being the command name.
type Command []string

// Name returns the first argument which is assumed to be the name of the command.
func (cmd Command) Name() string {
	if len(cmd) == 0 {
		return ""
	}
	return strings.ToLower(cmd[0])
}

// Argument returns the nth argument, or the empty string if there is none.
func (cmd Command) Argument(n int) string {
	if n >= len(cmd) {
		return ""
	}
	return cmd[n]
}

func (cmd Command) String() string {
	return strings.Join([]string(cmd), " ")
}

func main() {
	flag.BoolVar(showHelp, "h", false, "Show help message")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() >= 1 && strings.ToLower(flag.Args()[0]) == "help" {
		*showHelp = true
	}

	if *runVerbose {
		rawvol.Verbose = true
	}
	if *showHelp || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	if *useCPU > 0 {
		numCPU = *useCPU
	} else {
		numCPU = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(numCPU)

	// Capture ctrl+c and other interrupts.  In-flight reads stop at the next row.
	ctx, cancel := context.WithCancel(context.Background())
	stopSig := make(chan os.Signal, 1)
	go func() {
		for sig := range stopSig {
			log.Printf("Stop signal captured: %q.  Shutting down...\n", sig)
			cancel()
		}
	}()
	signal.Notify(stopSig, os.Interrupt, syscall.SIGTERM)

	err := DoCommand(ctx, Command(flag.Args()))
	cancel()
	rawvol.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// DoCommand serves as a switchboard for commands.
func DoCommand(ctx context.Context, cmd Command) error {
	if len(cmd) == 0 {
		return fmt.Errorf("Blank command!")
	}

	switch cmd.Name() {
	case "version":
		fmt.Printf("rawvol %s\n", rawvol.Version)
		return nil
	case "info":
		return DoInfo(ctx, cmd)
	case "read":
		return DoRead(ctx, cmd)
	default:
		return fmt.Errorf("unknown command %q, try 'rawvol help'", cmd)
	}
}
