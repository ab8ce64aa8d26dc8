package main

import (
	"os"
	"path/filepath"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// defaultHome is the state directory used when neither the -home flag nor
// ROYALTY_HOME is set.
func defaultHome() string {
	return env("ROYALTY_HOME", filepath.Join(os.Getenv("HOME"), ".royalty"))
}

func defaultKeyPath() string {
	return env("ROYALTY_PRIV_KEY", filepath.Join(os.Getenv("HOME"), ".royalty.priv.key"))
}
