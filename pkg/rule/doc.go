// Package rule defines switch rules and selects the rule that applies to the
// file a request was issued for.
//
// A rule is an ordered list of path templates. The order defines the cycle a
// user walks through when switching between related files. Rules of kind
// [KindGit] hold file name templates that are looked up in the list of files
// tracked by the repository instead of literal paths.
package rule
