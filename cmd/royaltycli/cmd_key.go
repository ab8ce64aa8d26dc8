package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/royalty/crypto"
	"github.com/iov-one/royalty/crypto/bech32"
	"github.com/stellar/go/exp/crypto/derivation"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with binary content containing private key is
created. This command fails if the private key file already exists.

By default a random key is created. Provide a hex encoded seed to create a
deterministic key. Together with a derivation path the key is derived from
the seed as described in SLIP-0010, for example "m/44'/234'/0'".
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file that is created. You can use ROYALTY_PRIV_KEY environment variable to set it.")
		seedFl = fl.String("seed", "",
			"Optional hex encoded seed. Without a derivation path it must be 32 bytes long.")
		pathFl = fl.String("derivation", "",
			"Optional derivation path, used together with the seed.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	var key *crypto.PrivateKey
	if *seedFl == "" {
		if *pathFl != "" {
			return fmt.Errorf("derivation path requires a seed")
		}
		key = crypto.GenPrivKeyEd25519()
	} else {
		k, err := derivePrivateKey(*seedFl, *pathFl)
		if err != nil {
			return err
		}
		key = k
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(key.Bytes()); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

// derivePrivateKey returns the key created from a hex encoded seed. When the
// path is empty the seed is used as it is.
func derivePrivateKey(hexSeed, path string) (*crypto.PrivateKey, error) {
	seed, err := hex.DecodeString(hexSeed)
	if err != nil {
		return nil, fmt.Errorf("cannot decode seed: %s", err)
	}
	if path != "" {
		k, err := derivation.DeriveForPath(path, seed)
		if err != nil {
			return nil, fmt.Errorf("cannot derive key using path %q: %s", path, err)
		}
		seed = k.Key
	}
	return crypto.PrivKeyEd25519FromSeed(seed)
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out a hex-address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", defaultKeyPath(),
			"Path to the private key file. You can use ROYALTY_PRIV_KEY environment variable to set it.")
		hrpFl = fl.String("bech32", "",
			"If set, print the address in bech32 format using given human readable part, for example tiov.")
	)
	fl.Parse(args)

	key, err := decodePrivateKey(*keyPathFl)
	if err != nil {
		return err
	}
	addr := key.PublicKey().Address()
	if *hrpFl == "" {
		_, err = fmt.Fprintln(output, addr)
		return err
	}
	b, err := bech32.Encode(*hrpFl, addr)
	if err != nil {
		return fmt.Errorf("cannot serialize to bech32: %s", err)
	}
	_, err = fmt.Fprintln(output, string(b))
	return err
}
