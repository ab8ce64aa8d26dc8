package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/app"
	royaltyapp "github.com/iov-one/royalty/cmd/royaltycli/app"
	"github.com/iov-one/royalty/crypto"
	"github.com/tendermint/tendermint/libs/log"
)

// writeTx serialize the transaction using a protocol buffer. First bytes
// written contain the information how much space the transaction takes.
// Size information is required to be able to stream the messages:
// https://developers.google.com/protocol-buffers/docs/techniques#streaming
func writeTx(w io.Writer, tx *royaltyapp.Tx) (int, error) {
	b, err := royalty.Marshal(tx)
	if err != nil {
		return 0, err
	}

	var size [txHeaderSize]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(b)))

	if n, err := w.Write(size[:]); err != nil {
		return n, err
	}
	if n, err := w.Write(b); err != nil {
		return n + txHeaderSize, err
	}
	return txHeaderSize + len(b), nil
}

func readTx(r io.Reader) (*royaltyapp.Tx, int, error) {
	// When serialized using writeTx function, first bytes contain
	// information about the actual size of the transaction message.
	var size [txHeaderSize]byte
	if n, err := io.ReadFull(r, size[:]); err != nil {
		return nil, n, err
	}
	msgSize := binary.BigEndian.Uint32(size[:])
	raw := make([]byte, msgSize)
	if n, err := io.ReadFull(r, raw); err != nil {
		return nil, n + txHeaderSize, err
	}

	var tx royaltyapp.Tx
	if err := royalty.Unmarshal(raw, &tx); err != nil {
		return nil, int(msgSize + txHeaderSize), err
	}
	return &tx, int(msgSize + txHeaderSize), nil
}

const txHeaderSize = 4

// writeMsg wraps the message in a new transaction and writes it out.
func writeMsg(w io.Writer, msg royalty.Msg) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %s", err)
	}
	tx, err := royaltyapp.NewTx(msg)
	if err != nil {
		return err
	}
	_, err = writeTx(w, tx)
	return err
}

// openApp loads the application state kept in the home directory.
// Returned application must be closed by the caller.
func openApp(home, logLevel string, debug bool) (*app.Application, error) {
	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, fmt.Errorf("cannot create home directory: %s", err)
	}
	logger, err := newLogger(logLevel)
	if err != nil {
		return nil, err
	}
	return royaltyapp.Application(filepath.Join(home, "state.db"), logger, debug)
}

// newLogger returns a logger writing to stderr, filtered to given level.
func newLogger(level string) (log.Logger, error) {
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", err)
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	return log.NewFilter(logger, allowed).With("module", "royaltycli"), nil
}

// decodePrivateKey reads the raw ed25519 private key stored by keygen.
func decodePrivateKey(path string) (*crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	return crypto.PrivateKeyFromBytes(raw)
}

// newMetadata returns the metadata every message created by this
// client carries.
func newMetadata() *royalty.Metadata {
	return &royalty.Metadata{Schema: 1}
}
