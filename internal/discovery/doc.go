// Package discovery finds converter inputs and names the song group each one
// produces.
//
// Inputs are files named merged.mid at any depth under the input root.
// filepath.WalkDir does not descend into symlinked directories, so a symlink
// cycle cannot trap the walk.
package discovery
