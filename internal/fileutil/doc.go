// Package fileutil holds the small filesystem operations the pipeline needs
// around chart output: byte-verified copies and wiping the output root.
package fileutil
