// Package midich drives the midi-ch browser converter through a headless
// Chrome session.
//
// The converter is a static web page that turns an uploaded MIDI file into a
// chart package and hands it to FileSaver's window.saveAs. Session installs
// a hook in every tab before the page's own scripts run, so the saved blob
// is delivered back over a DevTools runtime binding instead of the browser's
// download manager. Only the first save per conversion is kept.
package midich
