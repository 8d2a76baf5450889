// Package expr provides CEL (Common Expression Language) functionality
// for evaluating rule guards against the file a request was issued for.
//
// It creates CEL environments with custom functions for:
//   - File path operations (pathBase, pathDir, pathExt)
//
// CEL expressions have access to variables:
//   - `file` (string): The real path of the current file
//   - `name` (string): The base name of the current file
//   - `stem` (string): The base name without its extension
//   - `project` (string): The name of the project declaring the rule
package expr
