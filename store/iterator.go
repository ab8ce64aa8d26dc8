package store

import (
	"bytes"

	"github.com/iov-one/royalty/errors"
)

// mergeIterator combines the sorted items of a cache layer with the
// iterator of the parent store. Cached items shadow parent values with
// the same key, deleted items hide them.
type mergeIterator struct {
	items []keyer
	idx   int

	parent Iterator
	// lookahead of the parent iterator
	pKey, pValue []byte
	pValid       bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []keyer, parent Iterator) (*mergeIterator, error) {
	it := &mergeIterator{items: items, parent: parent}
	if err := it.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return it, nil
}

func (m *mergeIterator) advanceParent() error {
	key, value, err := m.parent.Next()
	switch {
	case err == nil:
		m.pKey, m.pValue, m.pValid = key, value, true
		return nil
	case errors.ErrIteratorDone.Is(err):
		m.pKey, m.pValue, m.pValid = nil, nil, false
		return nil
	default:
		return err
	}
}

// Next returns the next key in order from both sources.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		hasItem := m.idx < len(m.items)
		if !hasItem && !m.pValid {
			return nil, nil, errors.ErrIteratorDone
		}

		var cmp int
		switch {
		case !hasItem:
			cmp = 1
		case !m.pValid:
			cmp = -1
		default:
			cmp = bytes.Compare(m.items[m.idx].Key(), m.pKey)
		}

		if cmp > 0 {
			key, value := m.pKey, m.pValue
			if err := m.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		}

		item := m.items[m.idx]
		m.idx++
		if cmp == 0 {
			// cached value shadows the parent one
			if err := m.advanceParent(); err != nil {
				return nil, nil, err
			}
		}
		switch t := item.(type) {
		case setItem:
			return t.key, t.value, nil
		case deletedItem:
			continue
		default:
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", t)
		}
	}
}

func (m *mergeIterator) Release() {
	m.parent.Release()
	m.items = nil
}
