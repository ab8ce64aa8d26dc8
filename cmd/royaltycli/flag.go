package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/iov-one/royalty"
)

// flAddress returns a value that is being initialized with given default value
// and optionally overwritten by a command line argument if provided. This
// function follows Go's flag package convention.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *royalty.Address {
	var a royalty.Address
	if defaultVal != "" {
		var err error
		a, err = royalty.ParseAddress(defaultVal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q royalty.Address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// flAddresses returns a list of addresses. Every use of the flag appends
// one address, in order.
func flAddresses(fl *flag.FlagSet, name, usage string) *addressList {
	var l addressList
	fl.Var(&l, name, usage)
	return &l
}

type addressList []royalty.Address

func (l addressList) String() string {
	s := make([]string, len(l))
	for i, a := range l {
		s[i] = a.String()
	}
	return strings.Join(s, ",")
}

func (l *addressList) Set(raw string) error {
	a, err := royalty.ParseAddress(raw)
	if err != nil {
		return err
	}
	*l = append(*l, a)
	return nil
}

// flagDie terminates the program when a flag value is invalid.
func flagDie(description string, args ...interface{}) {
	if !strings.HasSuffix(description, "\n") {
		description += "\n"
	}
	fmt.Fprintf(os.Stderr, description, args...)
	os.Exit(2)
}
