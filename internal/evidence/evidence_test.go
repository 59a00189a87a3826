package evidence_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"laporantdx/backend/internal/evidence"
	"laporantdx/backend/internal/logger"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failErr error
	puts    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(_ context.Context, name, _ string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, name)
	if f.failErr != nil {
		return f.failErr
	}
	if _, ok := f.objects[name]; ok {
		return evidence.ErrObjectExists
	}
	f.objects[name] = data
	return nil
}

func (f *fakeStore) PublicURL(name string) string {
	return "https://cdn.test/" + name
}

func createTestImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Studio":            "Studio",
		"  Audio  hilang  ": "Audio_hilang",
		"../../etc/passwd":  "etcpasswd",
		"a/b\\c":            "abc",
		"2024-05-01 15:30":  "2024-05-01_1530",
		"":                  "bukti",
		"///":               "bukti",
		"...":               "bukti",
		"file..name":        "file.name",
		"tab\tnew\nline":    "tab_new_line",
	}
	for in, want := range cases {
		assert.Equal(t, want, evidence.Sanitize(in), "input %q", in)
	}
}

func TestSanitize_LongLabelIsCapped(t *testing.T) {
	out := evidence.Sanitize(strings.Repeat("gangguan ", 40))
	assert.LessOrEqual(t, utf8.RuneCountInString(out), 64)
	assert.NotContains(t, out, " ")
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "evidence/2024-05-01/Studio_2024-05-01_1530.jpg",
		evidence.ObjectName("evidence/2024-05-01", "Studio", "2024-05-01 15:30", 1))
	assert.Equal(t, "evidence/2024-05-01/Studio_2024-05-01_1530_3.jpg",
		evidence.ObjectName("evidence/2024-05-01", "Studio", "2024-05-01 15:30", 3))
	assert.Equal(t, "incidents/x_y.jpg", evidence.ObjectName("../incidents/./", "x", "y", 1))
	assert.Equal(t, "bukti_bukti.jpg", evidence.ObjectName("", "", "", 1))
}

func TestRecompress_BoundsAndFormat(t *testing.T) {
	out, err := evidence.Recompress(createTestImage(t, 1800, 900))
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 1600, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
}

func TestRecompress_SmallImageKeepsSize(t *testing.T) {
	out, err := evidence.Recompress(createTestImage(t, 320, 200))
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestRecompress_RejectsNonImage(t *testing.T) {
	_, err := evidence.Recompress([]byte("definitely not an image"))
	assert.Error(t, err)
}

// pngHeader returns a PNG that declares w x h pixels but carries no image
// data; only its header can be decoded.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 0 // grayscale

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestRecompress_RejectsOversizedDimensions(t *testing.T) {
	_, err := evidence.Recompress(pngHeader(16000, 16000))
	require.Error(t, err)
	assert.ErrorIs(t, err, evidence.ErrImageTooLarge)
}

func TestUploader_OversizedImageReturnsEmpty(t *testing.T) {
	store := newFakeStore()
	u := evidence.NewUploader(store, logger.NewNop())

	assert.Equal(t, "", u.Upload(context.Background(), pngHeader(20000, 10000), "Studio", "t", "f"))
	assert.Empty(t, store.puts)
}

func TestUploader_EmptyFileIsNoop(t *testing.T) {
	store := newFakeStore()
	u := evidence.NewUploader(store, logger.NewNop())

	assert.Equal(t, "", u.Upload(context.Background(), nil, "Studio", "t", "f"))
	assert.Equal(t, "", u.Upload(context.Background(), []byte{}, "Studio", "t", "f"))
	assert.Empty(t, store.puts)
}

func TestUploader_UploadsUnderDeterministicName(t *testing.T) {
	store := newFakeStore()
	u := evidence.NewUploader(store, logger.NewNop())

	url := u.Upload(context.Background(), createTestImage(t, 64, 64), "Studio", "2024-05-01 15:30", "evidence/2024-05-01")

	assert.Equal(t, "https://cdn.test/evidence/2024-05-01/Studio_2024-05-01_1530.jpg", url)
	require.Len(t, store.puts, 1)
}

func TestUploader_CollisionGetsSuffix(t *testing.T) {
	store := newFakeStore()
	u := evidence.NewUploader(store, logger.NewNop())
	img := createTestImage(t, 32, 32)

	first := u.Upload(context.Background(), img, "Audio", "15:30", "incidents")
	second := u.Upload(context.Background(), img, "Audio", "15:30", "incidents")

	assert.Equal(t, "https://cdn.test/incidents/Audio_1530.jpg", first)
	assert.Equal(t, "https://cdn.test/incidents/Audio_1530_2.jpg", second)
	assert.Len(t, store.objects, 2)
}

func TestUploader_StoreFailureReturnsEmpty(t *testing.T) {
	store := newFakeStore()
	store.failErr = errors.New("bucket unavailable")
	u := evidence.NewUploader(store, logger.NewNop())

	assert.Equal(t, "", u.Upload(context.Background(), createTestImage(t, 16, 16), "Studio", "t", "f"))
	assert.Len(t, store.puts, 1)
}

func TestUploader_UndecodableFileReturnsEmpty(t *testing.T) {
	store := newFakeStore()
	u := evidence.NewUploader(store, logger.NewNop())

	assert.Equal(t, "", u.Upload(context.Background(), []byte("garbage"), "Studio", "t", "f"))
	assert.Empty(t, store.puts)
}

func TestGCSStore_ClientOptions(t *testing.T) {
	assert.Nil(t, evidence.ClientOptions("  "))
	assert.Len(t, evidence.ClientOptions(`{"type":"service_account"}`), 1)
	assert.Len(t, evidence.ClientOptions("/etc/creds.json"), 1)
}
