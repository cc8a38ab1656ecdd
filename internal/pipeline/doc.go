// Package pipeline is the batch driver: it wipes the output root, discovers
// merged.mid inputs, and for each one in order converts it through the
// browser session, unpacks the saved payload into the song group's
// directory, copies the input alongside as notes.mid, and patches title and
// artist into the descriptors.
//
// One browser session serves the whole batch and is always closed, whether
// the loop finishes, fails or is cancelled. A file lock in the state
// directory keeps two runs from sharing an output root.
package pipeline
