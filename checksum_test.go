package recrate

import (
	"encoding/json"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebuildChecksumRecord(t *testing.T) {
	t.Parallel()

	readme := []byte("# readme\n")
	manifest := []byte("[package]\nname = \"bar\"\n")
	prior := &checksumRecord{
		Files: map[string]string{
			"README.md":  digest.SHA256.FromBytes(readme).Encoded(),
			"Cargo.toml": "0000000000000000000000000000000000000000000000000000000000000000",
		},
		Package: "feedfacefeedface",
	}

	data, err := rebuildChecksumRecord(prior, []checksumInput{
		{path: "README.md", body: readme, changed: false},
		{path: "Cargo.toml", body: manifest, changed: true},
	})
	require.NoError(t, err)

	var rec checksumRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, prior.Files["README.md"], rec.Files["README.md"])
	assert.Equal(t, digest.SHA256.FromBytes(manifest).Encoded(), rec.Files["Cargo.toml"])
	assert.Equal(t, "feedfacefeedface", rec.Package)
}

func TestRebuildChecksumRecordDetectsCorruption(t *testing.T) {
	t.Parallel()

	body := []byte("unchanged bytes")
	prior := &checksumRecord{
		Files: map[string]string{
			"data.bin": "1111111111111111111111111111111111111111111111111111111111111111",
		},
	}

	_, err := rebuildChecksumRecord(prior, []checksumInput{
		{path: "data.bin", body: body, changed: false},
	})
	require.ErrorIs(t, err, ErrChecksumMismatch)
	assert.Contains(t, err.Error(), "data.bin")
}

func TestRebuildChecksumRecordToleratesIncompletePrior(t *testing.T) {
	t.Parallel()

	// Legacy records may not cover every file; missing entries are added.
	body := []byte("new file")
	prior := &checksumRecord{Files: map[string]string{}}

	data, err := rebuildChecksumRecord(prior, []checksumInput{
		{path: "extra.rs", body: body, changed: false},
	})
	require.NoError(t, err)

	var rec checksumRecord
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, digest.SHA256.FromBytes(body).Encoded(), rec.Files["extra.rs"])
}

func TestRebuildChecksumRecordStableSerialization(t *testing.T) {
	t.Parallel()

	files := []checksumInput{
		{path: "z.rs", body: []byte("z"), changed: true},
		{path: "a.rs", body: []byte("a"), changed: true},
	}
	first, err := rebuildChecksumRecord(&checksumRecord{}, files)
	require.NoError(t, err)

	second, err := rebuildChecksumRecord(&checksumRecord{}, []checksumInput{files[1], files[0]})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseChecksumRecordMalformed(t *testing.T) {
	t.Parallel()

	_, err := parseChecksumRecord([]byte("not json"))
	assert.ErrorIs(t, err, ErrArchive)
}
