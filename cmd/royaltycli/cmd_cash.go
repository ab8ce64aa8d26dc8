package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/royalty/x/cash"
)

func cmdSend(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Create a transaction for transfering funds from the source wallet to the
destination wallet. The transaction must be signed by the source wallet owner.
`)
		fl.PrintDefaults()
	}
	var (
		srcFl    = flAddress(fl, "src", "", "A source wallet address that the funds are taken from.")
		dstFl    = flAddress(fl, "dst", "", "A destination wallet address that the funds are send to.")
		amountFl = fl.Uint64("amount", 0, "Amount to transfer.")
		memoFl   = fl.String("memo", "", "A short message attached to the transfer.")
	)
	fl.Parse(args)

	msg := cash.SendMsg{
		Metadata:    newMetadata(),
		Source:      *srcFl,
		Destination: *dstFl,
		Amount:      *amountFl,
		Memo:        *memoFl,
	}
	return writeMsg(output, &msg)
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the balance of a wallet stored in the local state. A wallet that
was never funded has a zero balance.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(),
			"Directory of the local state. You can use ROYALTY_HOME environment variable to set it.")
		addrFl = flAddress(fl, "addr", "", "Wallet address.")
	)
	fl.Parse(args)

	if err := addrFl.Validate(); err != nil {
		flagDie("invalid wallet address: %s", err)
	}

	a, err := openApp(*homeFl, "none", false)
	if err != nil {
		return err
	}
	defer a.Close()

	var w cash.Wallet
	if _, err := queryOne(a, "/wallets", *addrFl, &w); err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, w.Amount)
	return err
}
