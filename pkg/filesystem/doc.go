// Package filesystem provides filesystem implementations for attachlink.
//
// It contains the OS-backed implementation of types.FS, an afero adapter
// used by tests, and MoveFile, the move primitive used when relocating
// attachment files.
package filesystem
