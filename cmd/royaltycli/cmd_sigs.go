package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/royalty/x/sigs"
)

func cmdSignTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign given transaction. This is decoding a transaction data from standard
input, adds a signature and writes back to standard output signed transaction
content.

The chain ID and the sequence of the signer are read from the local state.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(),
			"Directory of the local state. You can use ROYALTY_HOME environment variable to set it.")
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that transaction should be signed with. You can use ROYALTY_PRIV_KEY environment variable to set it.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return fmt.Errorf("cannot load private key: %s", err)
	}

	tx, _, err := readTx(input)
	if err != nil {
		return fmt.Errorf("cannot read transaction: %s", err)
	}

	a, err := openApp(*homeFl, "none", false)
	if err != nil {
		return err
	}
	defer a.Close()

	chainID := a.ChainID()
	if chainID == "" {
		return fmt.Errorf("local state is not initialized, run genesis first")
	}

	var user sigs.UserData
	if _, err := queryOne(a, "/auth", key.PublicKey().Address(), &user); err != nil {
		return fmt.Errorf("cannot get the next sequence number: %s", err)
	}

	sig, err := sigs.SignTx(key, tx, chainID, user.Sequence)
	if err != nil {
		return fmt.Errorf("cannot sign transaction: %s", err)
	}
	tx.Signatures = append(tx.Signatures, sig)

	_, err = writeTx(output, tx)
	return err
}
