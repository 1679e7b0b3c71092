// Package files implements the file-management engine.
//
// The package is organized into operation groups:
//   - listing: one-level directory listing and favourite locations
//   - mutate: create, rename, and recursive delete of single entries
//   - transfer: recursive copy and move of file-or-directory subtrees
//   - archive: zip creation/listing and tar creation
//   - metadata: per-entry stats and recursive directory size
//   - search: recursive name matching and glob patterns
//
// All operations are synchronous and take explicit absolute paths; the
// engine keeps no state between calls and imposes no locking of its own.
// Every tool returns the boolean Result envelope: Success=false means the
// operation did not complete as requested, without a structured reason.
package files
