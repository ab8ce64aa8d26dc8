package main

import (
	"fmt"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/app"
)

// queryOne loads a single model from the committed state into dest. It
// returns false if no entity is stored under given key.
func queryOne(a *app.Application, path string, key []byte, dest royalty.Persistent) (bool, error) {
	models, _, err := a.Query(path, key)
	if err != nil {
		return false, fmt.Errorf("query %s: %s", path, err)
	}
	switch len(models) {
	case 0:
		return false, nil
	case 1:
		if err := royalty.Unmarshal(models[0].Value, dest); err != nil {
			return false, fmt.Errorf("cannot decode %T: %s", dest, err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("query %s: %d results for a single key", path, len(models))
	}
}
