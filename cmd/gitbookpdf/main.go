// Package main provides the entry point for the gitbookpdf CLI.
//
// gitbookpdf archives a GitBook-hosted documentation site: it discovers
// every internal page reachable from a starting URL and renders each one
// to a PDF on local disk, mirroring the site's URL structure.
//
// Usage:
//
//	gitbookpdf https://docs.example.com
//	gitbookpdf https://docs.example.com --outDir archive --timeout 60
//
// See --help for all available options.
package main

// main is the entry point for gitbookpdf.
func main() {
	Execute()
}
