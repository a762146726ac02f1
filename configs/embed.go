// Package configs provides the embedded configuration template for
// hidewatch.
//
// The template is embedded at build time with //go:embed so it ships
// inside every binary, whether built from source or installed as a
// release. `hidewatch config init` writes it out as .hidewatch.yaml.
//
// To change the template, edit hidewatch.example.yaml and rebuild.
package configs

import _ "embed"

// ConfigTemplate is the annotated starter configuration written by
// `hidewatch config init`. Every value in it matches the built-in
// defaults, so a freshly written file changes nothing until edited.
//
//go:embed hidewatch.example.yaml
var ConfigTemplate string
