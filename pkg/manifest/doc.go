// Package manifest reads the meta.json manifest of a var package.
//
// A var is a zip archive with a meta.json entry at its root. Packages may
// also be unpacked into a directory named like the archive, in which case
// meta.json sits directly inside that directory. [Read] handles both.
//
// Only the keys of the "dependencies" object matter to the scanner; their
// values (license details, nested dependency trees) are kept opaque.
//
// Errors carry codes from [github.com/lightfinesthour/VAM-Dependency-Scanner/pkg/errors]:
// NOT_FOUND when meta.json is absent, MALFORMED when the archive or JSON
// cannot be decoded, IO_FAILURE when a read fails. Callers log and continue.
package manifest
