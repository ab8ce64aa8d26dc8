/*
Package app assembles handlers, decorators and stores into a runnable
state machine.

An Application owns a CommitKVStore. Transactions are checked against one
cache wrap and delivered against another. Commit writes the delivered
changes to the committed store and opens fresh caches. All calls are
serialized, so handlers never run concurrently.
*/
package app
