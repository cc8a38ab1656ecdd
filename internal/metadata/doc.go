// Package metadata derives a song's title and artist from its song group name
// and patches them into the two descriptor files a chart package carries:
// the song.ini key/value file and the notes.chart [Song] block.
//
// Both patchers locate one field with a line-anchored pattern and rewrite
// only its value, falling back to a fixed insertion point. Everything else
// in the file is left byte-for-byte, and applying the same metadata twice is
// a no-op the second time.
package metadata
