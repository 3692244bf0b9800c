// Package library scans a VaM package library into an [Index].
//
// A library root conventionally holds packages under AddonPackages/ and
// presets under Custom/. [Scan] walks both and records:
//
//   - every package identifier (file name with ".var" stripped),
//   - manifest edges: dependency name -> packages declaring it,
//   - preset edges: dependency name -> presets referencing it.
//
// Unreadable manifests and presets are logged against their file and
// skipped; they never abort the scan. A package whose manifest fails still
// contributes its identifier.
//
// [ScanPool] walks an external source root for candidate packages without
// reading any manifest; the resolver matches missing dependencies against
// it.
//
// Traversal goes through [Walk], a lazy iterator over [io/fs.WalkDir] that
// reports unreadable subtrees as per-entry errors and carries on. Hidden
// files and directories are skipped.
package library
