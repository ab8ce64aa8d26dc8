package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/app"
	royaltyapp "github.com/iov-one/royalty/cmd/royaltycli/app"
	"github.com/iov-one/royalty/x/track"
)

func cmdSubmitTransaction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read transactions from the standard input and apply them to the local state.
Every transaction is checked and then delivered. Delivered transactions are
committed when all of them are applied. The first failed transaction stops
the processing and nothing is committed.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(),
			"Directory of the local state. You can use ROYALTY_HOME environment variable to set it.")
		logLevelFl = fl.String("log-level", env("ROYALTY_LOG_LEVEL", "error"),
			"Log level: debug, info, error or none. You can use ROYALTY_LOG_LEVEL environment variable to set it.")
		debugFl = fl.Bool("debug", false, "Do not hide internal details of returned errors.")
	)
	fl.Parse(args)

	a, err := openApp(*homeFl, *logLevelFl, *debugFl)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := context.Background()
	var submitted int
	for {
		tx, _, err := readTx(input)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("cannot read transaction: %s", err)
		}
		if err := submitTx(ctx, a, tx, output); err != nil {
			return fmt.Errorf("transaction %d: %s", submitted, err)
		}
		submitted++
	}
	if submitted == 0 {
		return fmt.Errorf("no input data")
	}

	id, err := a.Commit()
	if err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	_, err = fmt.Fprintf(output, "committed %d transaction(s) at height %d\n", submitted, id.Version)
	return err
}

func submitTx(ctx context.Context, a *app.Application, tx *royaltyapp.Tx, output io.Writer) error {
	raw, err := royalty.Marshal(tx)
	if err != nil {
		return fmt.Errorf("cannot serialize transaction: %s", err)
	}
	if _, err := a.CheckTx(ctx, raw); err != nil {
		return fmt.Errorf("check: %s", err)
	}
	res, err := a.DeliverTx(ctx, raw)
	if err != nil {
		return fmt.Errorf("deliver: %s", err)
	}
	fmt.Fprintf(output, "%s: %s\n", royalty.GetPath(tx), res.Log)

	if tx.DistributeMsg != nil {
		result, err := track.DecodeResult(res.Data)
		if err != nil {
			return fmt.Errorf("cannot decode distribution result: %s", err)
		}
		for i, p := range result.Payouts {
			fmt.Fprintf(output, "\t%s\t%d\n", result.PayeeAddress(i), p.Amount)
		}
	}
	return nil
}
