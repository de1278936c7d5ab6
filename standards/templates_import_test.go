package standards_test

// Blank import triggers standards/templates' init(), which registers every
// template profile. This allows package standards' internal test files to
// build a Standard without importing standards/templates (an import cycle).
import _ "github.com/openstudio-standards/osstd/standards/templates"
