// Package archive implements the archiving phase: for each discovered
// link, derive its output path, load the page, prepare the DOM, and
// render it to a PDF under the output directory.
//
// The run is strictly sequential. One browsing engine is shared across
// the whole run, one browsing context is open at a time, and a failure on
// one link never aborts the loop. Only a discovery failure is fatal.
package archive
