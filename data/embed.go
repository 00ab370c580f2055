// Package data holds files shipped with the binaries.
package data

import _ "embed"

// Commands is the default command catalog, commands.json.
//
//go:embed commands.json
var Commands []byte
