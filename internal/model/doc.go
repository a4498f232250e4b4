// Package model defines the core data structures used throughout gitbookpdf.
//
// This package contains the following main types:
//   - PageResult: The outcome of archiving a single discovered link
//   - RunReport: The aggregate result of one archive run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (archive, report) need to use these types,
// so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
