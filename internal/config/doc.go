// Package config manages gitbookpdf configuration.
//
// Configuration is assembled once at startup from CLI flags plus an
// optional YAML file, validated, and passed through the application via
// dependency injection rather than global state. Nothing mutates a Config
// after Validate succeeds.
//
// The YAML file (.gitbookpdf.yaml in the working directory, or config.yaml
// under the XDG config directory) can override PDF rendering options and
// replace the built-in DOM preparation rules:
//
//	pdf:
//	  width: 21cm
//	  height: 29.7cm
//	  scale: 1.0
//	  margin: 1cm
//	rules:
//	  - selector: "header.site-banner"
//	    action: remove
package config
