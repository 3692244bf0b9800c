// Package resolve classifies the dependencies of an installed library
// against an external source library.
//
// Every dependency name found in the library's manifests and presets ends
// in exactly one state:
//
//   - Satisfied: an installed package already fulfils it.
//   - Resolved: a package in the source pool matches it; when a destination
//     is configured the file is copied there.
//   - Missing: nothing matches.
//
// # Matching
//
// [Matcher.Match] picks a source candidate for a dependency name:
//
//  1. An identifier equal to the name.
//  2. For "X.latest", the candidate "X.<N>" with the highest N.
//  3. Otherwise the highest "X.<N>" where X is the name minus its last
//     segment, whatever that segment was.
//
// Rule 3 substitutes a different version than the one requested when the
// exact version is absent. Matches found this way are flagged as
// substitutions; [Matcher.Strict] turns the rule off.
//
// Versions compare numerically, so "Foo.Bar.10" beats "Foo.Bar.2".
package resolve
