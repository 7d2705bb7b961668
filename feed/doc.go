// Package feed defines the JSON documents exchanged between the fetch daemon
// and the display engine, with a loader that degrades every failure to an
// absent document.
//
// Three documents drive the display: the departure board (destination group
// -> next departure), the operation status (suspended and delayed lines),
// and the weather report. A fourth document, the first/last train times, is
// only consumed by the fetch daemon to annotate departures.
//
// The loader never returns an error. Missing files, unreadable files, JSON
// null documents, and malformed content all collapse to nil, and the display
// keeps rendering with whatever is left.
package feed
