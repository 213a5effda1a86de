// Package model defines the data structures for annotation mutation.
package model

// Path represents a file system path.
type Path string

// File is a reference to a source file together with a stable content
// fingerprint (SHA-256 of the file bytes).
type File struct {
	Path Path   `json:"path"`
	Hash string `json:"hash"`
}

// Source represents a Python source file selected for mutation.
type Source struct {
	Origin *File `json:"origin"`
}
