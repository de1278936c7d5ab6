// Package stddata embeds the default standards tables. Each file under json/
// holds one or more tables keyed by table name; standards.LoadData parses
// them.
package stddata

import "embed"

// Root is the directory inside FS that holds the tables.
const Root = "json"

// FS holds the bundled standards tables.
//
//go:embed json
var FS embed.FS
