package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/royalty/app"
)

func cmdGenesis(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the local state from a genesis file. The genesis file declares the
chain ID and the initial state of all extensions, for example wallets and
tracks. State can be initialized only once.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(),
			"Directory of the local state. You can use ROYALTY_HOME environment variable to set it.")
		fileFl     = fl.String("file", "genesis.json", "Path to the genesis file.")
		logLevelFl = fl.String("log-level", env("ROYALTY_LOG_LEVEL", "info"),
			"Log level: debug, info, error or none. You can use ROYALTY_LOG_LEVEL environment variable to set it.")
	)
	fl.Parse(args)

	gen, err := app.LoadGenesis(*fileFl)
	if err != nil {
		return fmt.Errorf("cannot load genesis: %s", err)
	}
	if gen.ChainID == "" {
		return fmt.Errorf("genesis file must declare a chain_id")
	}

	a, err := openApp(*homeFl, *logLevelFl, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.InitChain(*gen); err != nil {
		return fmt.Errorf("cannot initialize chain: %s", err)
	}
	id, err := a.Commit()
	if err != nil {
		return fmt.Errorf("cannot commit genesis: %s", err)
	}
	_, err = fmt.Fprintf(output, "chain %q initialized at height %d\n", gen.ChainID, id.Version)
	return err
}
