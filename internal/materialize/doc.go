// Package materialize turns a captured converter payload into files on disk.
//
// The converter either saves one chart file or a zip bundle holding the chart
// package (notes.chart, song.ini, audio). Both shapes land in the same song
// directory layout. Entry names that would resolve outside the destination are
// rejected with ErrUnsafeEntry.
package materialize
