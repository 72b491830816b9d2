// Package cache provides a byte-budgeted LRU block cache for gallery
// blob reads.
//
// Gallery stores serve documents from local files or object storage. The
// caching wrapper in package gallery splits blobs into fixed-size blocks
// and keeps hot blocks here, so repeated loads of the same document do
// not hit the backend again. Capacity is tracked in bytes, optionally
// coordinated with a resource.Controller memory budget.
package cache
