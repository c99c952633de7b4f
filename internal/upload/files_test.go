package upload

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngFile builds a File carrying a minimal valid PNG payload.
func pngFile(name string) File {
	data := append(append([]byte{}, pngSignature...), []byte("payload")...)
	return File{Name: name, Size: int64(len(data)), ContentType: "image/png", Data: data}
}

// testLimits relaxes the file-count floor so small batches can be
// exercised without building 16 fixtures per test.
var testLimits = Limits{MinFiles: 1, MaxFiles: 60}

func TestValidateFiles_Valid(t *testing.T) {
	files := []File{pngFile("a.png"), pngFile("b.png")}
	records := []Record{{FileName: "a.png"}, {FileName: "b.png"}}

	require.NoError(t, ValidateFiles(files, records, testLimits))
}

func TestValidateFiles_CountBounds(t *testing.T) {
	var files []File
	var records []Record
	for i := range 15 {
		name := fmt.Sprintf("s%d.png", i)
		files = append(files, pngFile(name))
		records = append(records, Record{FileName: name})
	}

	// 15 files is below the default floor of 16.
	err := ValidateFiles(files, records, Limits{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside allowed range")

	// One more reaches the floor.
	files = append(files, pngFile("s15.png"))
	records = append(records, Record{FileName: "s15.png"})
	require.NoError(t, ValidateFiles(files, records, Limits{}))
}

func TestValidateFiles_TooMany(t *testing.T) {
	var files []File
	var records []Record
	for i := range 61 {
		name := fmt.Sprintf("s%d.png", i)
		files = append(files, pngFile(name))
		records = append(records, Record{FileName: name})
	}

	err := ValidateFiles(files, records, Limits{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside allowed range")
}

func TestValidateFiles_DuplicateName(t *testing.T) {
	files := []File{pngFile("a.png"), pngFile("a.png")}
	records := []Record{{FileName: "a.png"}}

	err := ValidateFiles(files, records, testLimits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate file name")
}

func TestValidateFiles_IllegalName(t *testing.T) {
	files := []File{pngFile(`bad|name.png`)}
	records := []Record{{FileName: `bad|name.png`}}

	err := ValidateFiles(files, records, testLimits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal characters")
}

func TestValidateFiles_Oversize(t *testing.T) {
	f := pngFile("big.png")
	f.Size = DefaultFileMaxBytes + 1

	err := ValidateFiles([]File{f}, []Record{{FileName: "big.png"}}, testLimits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size limit")
}

func TestValidateFiles_RejectsMissingMagicBytes(t *testing.T) {
	// 17 bytes claiming image/png but lacking the PNG signature.
	f := File{
		Name:        "fake.png",
		Size:        17,
		ContentType: "image/png",
		Data:        []byte("not a png at all!"),
	}

	err := ValidateFiles([]File{f}, []Record{{FileName: "fake.png"}}, testLimits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid PNG")
}

func TestValidateFiles_RejectsWrongContentType(t *testing.T) {
	// Correct magic bytes but content type says JPEG; both checks are
	// required, either failing rejects the file.
	f := pngFile("sneaky.png")
	f.ContentType = "image/jpeg"

	err := ValidateFiles([]File{f}, []Record{{FileName: "sneaky.png"}}, testLimits)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid PNG")
}

func TestValidateFiles_Mismatch(t *testing.T) {
	files := []File{pngFile("present.png"), pngFile("orphan.png")}
	records := []Record{{FileName: "present.png"}, {FileName: "missing.png"}}

	err := ValidateFiles(files, records, testLimits)
	require.Error(t, err)

	// Every offender on both sides is named.
	assert.Contains(t, err.Error(), "missing.png")
	assert.Contains(t, err.Error(), "orphan.png")
	assert.NotContains(t, err.Error(), "present.png")
}

func TestIsPNG(t *testing.T) {
	assert.True(t, IsPNG(pngFile("x").Data))
	assert.False(t, IsPNG([]byte("GIF89a")))
	assert.False(t, IsPNG(pngSignature[:4])) // truncated signature
}
