package filesystem

import "golang.org/x/text/unicode/norm"

// NormalizeName applies Unicode NFC normalization to a path component name.
// Different platforms (and different filesystems on the same platform) can
// hand back decomposed or precomposed forms of the same visible name;
// comparing and storing sync records under a single normalized form keeps
// entries stable regardless of which form the filesystem happened to return.
func NormalizeName(name string) string {
	return norm.NFC.String(name)
}

// NamesEqual reports whether two path component names are equal after
// Unicode normalization.
func NamesEqual(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
