// Package blob provides whole-object storage used by the JSON member table.
//
// Local writes files under a base directory via temp-file-and-rename, S3
// stores objects in a bucket (any S3-compatible endpoint), and Memory keeps
// them in process for tests. Missing objects surface as ErrNotFound.
package blob
