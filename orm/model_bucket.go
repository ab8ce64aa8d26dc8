package orm

import (
	"reflect"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	royalty.Persistent
	Validate() error
	Copy() Model
}

// ModelBucket is implemented by buckets that operates on Models.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db royalty.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db royalty.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated first.
	Put(db royalty.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db royalty.KVStore, key []byte) error

	// Iterate calls fn for every stored entity whose key starts with
	// prefix, in ascending key order. Iteration stops at the first error
	// returned by fn.
	Iterate(db royalty.ReadOnlyKVStore, prefix []byte, fn func(key []byte, m Model) error) error

	// Register registers this bucket for queries under given path.
	Register(name string, r royalty.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance that stores entities of
// the same type as model.
func NewModelBucket(name string, model Model) ModelBucket {
	t := reflect.TypeOf(model)
	if t.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	return &modelBucket{
		b:     NewBucket(name),
		model: t.Elem(),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db royalty.ReadOnlyKVStore, key []byte, dest Model) error {
	if !reflect.TypeOf(dest).Elem().AssignableTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	dest.Reset()
	if err := royalty.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

func (mb *modelBucket) Has(db royalty.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot query the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db royalty.KVStore, key []byte, m Model) error {
	if !reflect.TypeOf(m).Elem().AssignableTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.b.name)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := royalty.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "cannot serialize model")
	}
	if err := db.Set(mb.b.DBKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db royalty.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(mb.b.DBKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	return nil
}

func (mb *modelBucket) Iterate(db royalty.ReadOnlyKVStore, prefix []byte, fn func(key []byte, m Model) error) error {
	start := mb.b.DBKey(prefix)
	it, err := db.Iterator(start, store.PrefixEnd(start))
	if err != nil {
		return errors.Wrap(err, "cannot create iterator")
	}
	defer it.Release()

	for {
		key, value, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "iterator")
		}
		m := reflect.New(mb.model).Interface().(Model)
		if err := royalty.Unmarshal(value, m); err != nil {
			return errors.Wrapf(errors.ErrModel, "cannot unmarshal %T: %s", m, err)
		}
		if err := fn(mb.b.trimKey(key), m); err != nil {
			return err
		}
	}
}

func (mb *modelBucket) Register(name string, r royalty.QueryRouter) {
	mb.b.Register(name, r)
}
