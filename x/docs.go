/*
Package x contains the extensions of the royalty application.

Extensions implement common functionality (Handler, Decorator,
Initializer, etc.) and are combined together by the app package to
construct an application. The Authenticator interface defined here lets
every handler learn who signed a transaction without depending on a
particular signature scheme.

Note that types in exported code will be prefixed by the package, so
follow standard go naming conventions and avoid stutter. Use eg.
`track.DistributeMsg` in place of `track.TrackDistributeMsg`.
*/
package x
