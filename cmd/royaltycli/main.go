package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/iov-one/royalty"
)

// commands is a register of all availables commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// When a cmd function is called it is given stdin, stdout and command line
// arguments except the program name and this command name. It is the
// responsibility of the command function to parse the arguments. Use os.Stderr
// to write error messages.
//
// Commands creating a transaction write it to the output. A unix pipe can be
// used to sign and apply it to the local state:
//
//   $ royaltycli distribute -music-id song-1 -amount 1000 -src $ADDR \
//       -payee $HUMAN -payee $AI \
//       | royaltycli sign \
//       | royaltycli submit
//
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"add-contribution":     cmdAddContribution,
	"balance":              cmdBalance,
	"distribute":           cmdDistribute,
	"genesis":              cmdGenesis,
	"init-track":           cmdInitTrack,
	"keyaddr":              cmdKeyaddr,
	"keygen":               cmdKeygen,
	"preview-distribution": cmdPreviewDistribution,
	"send":                 cmdSend,
	"sign":                 cmdSignTransaction,
	"submit":               cmdSubmitTransaction,
	"version":              cmdVersion,
	"view":                 cmdTransactionView,
	"view-track":           cmdViewTrack,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s is a command line client for the royalty application.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, royalty.Version())
	return err
}
