/*
Package royalty defines the interfaces used throughout the application, such
as storage, transactions, handlers and authentication conditions.

The core of the application lives in the extensions under x/. Extension
x/track records the authorship of a creative work and splits a pool of value
between its contributors, extension x/cash is the value ledger that executes
the transfers. Package app glues extensions together into a transaction
processing application.
*/
package royalty
