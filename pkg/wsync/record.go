package wsync

import "strings"

// SentinelAddedRevision is the revision string that marks a resource as a
// just-added entry (not yet assigned a real revision by the repository).
const SentinelAddedRevision = "0"

// SyncBytes is the canonical byte encoding of a ResourceSync: the exact
// content of the corresponding Entries line, minus its leading kind
// character ("" for a file line, "D" for a folder line). All operations
// that accept or return SyncBytes preserve it exactly where on-disk
// interoperability matters; the codec round-trips bit-for-bit.
type SyncBytes = string

// ResourceSync is the decoded, immutable form of a single resource's sync
// record. KeywordMode and Tag are optional; an empty KeywordMode means
// default text mode. Extra holds any fields beyond the five the codec
// understands, preserved verbatim so that encode(decode(b)) == b even for
// records carrying fields this implementation doesn't interpret.
type ResourceSync struct {
	Name        string
	Revision    string
	Timestamp   string
	KeywordMode string
	Tag         string
	Extra       []string
}

// IsAddition reports whether the record's revision is the sentinel added
// revision.
func (r ResourceSync) IsAddition() bool {
	return r.Revision == SentinelAddedRevision
}

// IsDeletion reports whether the record's revision carries the CVS
// deletion marker (a leading "-").
func (r ResourceSync) IsDeletion() bool {
	return strings.HasPrefix(r.Revision, "-")
}

// IsFolder reports whether the record describes a folder entry (an empty
// revision field, matching the `D/<name>////` Entries line form).
func (r ResourceSync) IsFolder() bool {
	return r.Revision == ""
}

// ConvertToDeletion returns a copy of r with its revision marked deleted.
// It is a no-op if the revision is already marked deleted.
func (r ResourceSync) ConvertToDeletion() ResourceSync {
	if r.IsDeletion() || r.Revision == "" {
		return r
	}
	clone := r
	clone.Revision = "-" + r.Revision
	return clone
}

// ConvertFromDeletion returns a copy of r with its deletion marker removed.
// It is a no-op if the revision is not marked deleted.
func (r ResourceSync) ConvertFromDeletion() ResourceSync {
	if !r.IsDeletion() {
		return r
	}
	clone := r
	clone.Revision = strings.TrimPrefix(r.Revision, "-")
	return clone
}

// SetRevision returns a copy of r with its revision replaced.
func (r ResourceSync) SetRevision(revision string) ResourceSync {
	clone := r
	clone.Revision = revision
	return clone
}

// NameOf, RevisionOf, KeywordModeOf, and TagOf decode a single field from
// raw sync bytes without materializing a full ResourceSync, mirroring the
// pure-function accessor style the on-disk format's callers expect.

func NameOf(b SyncBytes) (string, error) {
	r, err := DecodeResourceSync(b)
	if err != nil {
		return "", err
	}
	return r.Name, nil
}

func RevisionOf(b SyncBytes) (string, error) {
	r, err := DecodeResourceSync(b)
	if err != nil {
		return "", err
	}
	return r.Revision, nil
}

func KeywordModeOf(b SyncBytes) (string, error) {
	r, err := DecodeResourceSync(b)
	if err != nil {
		return "", err
	}
	return r.KeywordMode, nil
}

func TagOf(b SyncBytes) (string, error) {
	r, err := DecodeResourceSync(b)
	if err != nil {
		return "", err
	}
	return r.Tag, nil
}

func IsAddition(b SyncBytes) (bool, error) {
	r, err := DecodeResourceSync(b)
	if err != nil {
		return false, err
	}
	return r.IsAddition(), nil
}

func IsDeletion(b SyncBytes) (bool, error) {
	r, err := DecodeResourceSync(b)
	if err != nil {
		return false, err
	}
	return r.IsDeletion(), nil
}

func IsFolder(b SyncBytes) (bool, error) {
	r, err := DecodeResourceSync(b)
	if err != nil {
		return false, err
	}
	return r.IsFolder(), nil
}

// DecodeResourceSync parses raw sync bytes into a ResourceSync. The input
// must begin with "/" and carry at least the five fields
// (name/revision/timestamp/keyword-mode/tag); anything beyond the fifth
// field is preserved in Extra so re-encoding is lossless.
func DecodeResourceSync(b SyncBytes) (ResourceSync, error) {
	if b == "" || b[0] != '/' {
		return ResourceSync{}, &MalformedSyncRecord{Offset: 0, Reason: "record must begin with '/'"}
	}

	fields := strings.Split(b[1:], "/")
	if len(fields) < 5 {
		return ResourceSync{}, &MalformedSyncRecord{
			Offset: len(b),
			Reason: "expected at least 5 fields after leading '/'",
		}
	}
	if fields[0] == "" {
		return ResourceSync{}, &MalformedSyncRecord{Offset: 1, Reason: "empty resource name"}
	}

	record := ResourceSync{
		Name:        fields[0],
		Revision:    fields[1],
		Timestamp:   fields[2],
		KeywordMode: fields[3],
		Tag:         fields[4],
	}
	if len(fields) > 5 {
		record.Extra = append([]string(nil), fields[5:]...)
	}
	return record, nil
}

// EncodeResourceSync renders a ResourceSync back to its canonical sync
// bytes form. It is the exact inverse of DecodeResourceSync:
// EncodeResourceSync(decoded) == original for any well-formed original.
func EncodeResourceSync(r ResourceSync) SyncBytes {
	fields := make([]string, 0, 5+len(r.Extra))
	fields = append(fields, r.Name, r.Revision, r.Timestamp, r.KeywordMode, r.Tag)
	fields = append(fields, r.Extra...)
	return "/" + strings.Join(fields, "/")
}

// SentinelMalformedRecord substitutes a minimal addition-form record for a
// name that failed to decode, per the codec error policy: malformed
// records are logged and replaced rather than propagated.
func SentinelMalformedRecord(name string) ResourceSync {
	return ResourceSync{Name: name, Revision: SentinelAddedRevision}
}
