package recrate

import (
	"encoding/json"
	"fmt"

	"github.com/opencontainers/go-digest"
)

// checksumName is the integrity record filename at the package root.
// Archives packaged without one are tolerated; the record is then simply
// not regenerated.
const checksumName = ".cargo-checksum.json"

// checksumRecord maps package-root-relative paths to hex SHA-256 content
// hashes. The package field carries the hash of the originating crate file
// and is preserved verbatim across a rename.
type checksumRecord struct {
	Files   map[string]string `json:"files"`
	Package string            `json:"package,omitempty"`
}

func parseChecksumRecord(data []byte) (*checksumRecord, error) {
	var rec checksumRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: parse integrity record: %v", ErrArchive, err)
	}
	return &rec, nil
}

// checksumInput is one file contributing to the rebuilt record.
type checksumInput struct {
	path    string // relative to the package root
	body    []byte
	changed bool
}

// rebuildChecksumRecord recomputes the integrity record over the final file
// bytes. Files the transform left untouched are checked against the prior
// record where it covers them; a disagreement means the input archive was
// already corrupt and aborts the rename. Files absent from the prior record
// (legacy archives) are simply added.
func rebuildChecksumRecord(prior *checksumRecord, files []checksumInput) ([]byte, error) {
	rec := checksumRecord{
		Files:   make(map[string]string, len(files)),
		Package: prior.Package,
	}
	for _, f := range files {
		sum := digest.SHA256.FromBytes(f.body).Encoded()
		if !f.changed {
			if want, ok := prior.Files[f.path]; ok && want != sum {
				return nil, fmt.Errorf("%w: %s", ErrChecksumMismatch, f.path)
			}
		}
		rec.Files[f.path] = sum
	}

	// json.Marshal emits map keys sorted, giving the record a stable,
	// order-independent serialization.
	data, err := json.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("serialize integrity record: %w", err)
	}
	return data, nil
}
