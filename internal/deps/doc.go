// Package deps checks the external programs chartsmith needs at runtime,
// chiefly the Chrome or Chromium binary that hosts the converter page.
package deps
