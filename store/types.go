/*
Package store provides the storage layers behind royalty.KVStore.

MemStore is a btree based in-memory store useful for tests. Every store can be
layered with a BTreeCacheWrap that collects writes and either flushes them to
the parent store (Write) or drops them (Discard). This is how a single
transaction is made all-or-nothing.
*/
package store

import "github.com/iov-one/royalty"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = royalty.ReadOnlyKVStore
type SetDeleter = royalty.SetDeleter
type KVStore = royalty.KVStore
type Batch = royalty.Batch
type Iterator = royalty.Iterator
type CacheableKVStore = royalty.CacheableKVStore
type KVCacheWrap = royalty.KVCacheWrap
type CommitKVStore = royalty.CommitKVStore
type CommitID = royalty.CommitID
type Model = royalty.Model
