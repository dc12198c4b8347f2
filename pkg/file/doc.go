/*
Package file provides filesystem helpers for directories, files, listings,
metadata and encoding conversion.

Paths are normalized before use: backslashes become slashes and doubled
separators collapse. Every operation reports failure through an error; a
multi-step operation that fails halfway is not rolled back.

# Layout

  - dir.go: directory creation, removal, scanning and size accounting
  - ops.go: file creation, reading, copy and move
  - list.go: filtered and sorted listings, glob
  - info.go: stat metadata and MIME detection
  - encoding.go: character set conversion
  - paths.go: pure path helpers
  - naming.go: generated names, uploads and remote downloads

# Configuration

A Manager reads HELPER_FILE_DIR_MODE and HELPER_FILE_FILE_MODE through
NewFromEnv. Modes accept octal notation such as 0755.
*/
package file
