// Package fs abstracts the file operations behind document persistence.
//
// LocalFS is the production implementation; FaultyFS wraps any
// FileSystem and injects write, sync or close failures into files whose
// name matches a pattern, which is how the IOFailure paths of the
// converter's atomic save sequence are tested.
//
// The interfaces carry no context.Context: local file syscalls are not
// meaningfully cancelable. Remote storage lives behind the gallery
// package, whose operations are context-aware.
package fs
