package ribbon

import _ "embed"

// Version is the library version, kept in the VERSION file so release
// tooling and the binary always agree. Trim before printing.
//
//go:embed VERSION
var Version string
