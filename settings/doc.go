// Package settings persists user settings and named export presets.
//
// A Store keeps everything under a single directory:
//
//	{dir}/settings.json
//	{dir}/presets/{name}.json
//
// Records are JSON. Each one is checked against an embedded CUE schema when
// it is written and again when it is read back, so a hand-edited file that
// no longer fits the schema is treated as missing. Presets can also be
// exchanged as YAML documents.
//
// Like the path and file services, a Store never returns errors from its
// record operations. Failures are logged and the zero value for the result
// type is returned.
package settings
