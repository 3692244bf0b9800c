// Package varname classifies var package identifiers and dependency
// references.
//
// A var identifier has the shape <Creator>.<PackageName>.<Version>. The final
// dot-segment is a version qualifier when it is a non-negative integer or the
// literal "latest"; otherwise the name is bare and has no qualifier.
//
//	varname.Split("Alice.Hair.3")      // "Alice.Hair", "3"
//	varname.Split("Alice.Hair.latest") // "Alice.Hair", "latest"
//	varname.Split("Alice.Hair")        // "Alice.Hair", ""
//
// [Base] is idempotent on bare names. [Satisfies] implements the
// already-installed check used before any source lookup, and [Referenced]
// the "any variation of its name" test used to find unreferenced packages.
package varname
