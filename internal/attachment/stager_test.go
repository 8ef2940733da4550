package attachment

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAlerter struct {
	messages []string
}

func (a *recordingAlerter) Alert(message string) {
	a.messages = append(a.messages, message)
}

type decodeRequest struct {
	token uint64
	file  File
}

type queuedDecoder struct {
	requests []decodeRequest
	err      error
}

func (d *queuedDecoder) RequestDecode(token uint64, file File) error {
	d.requests = append(d.requests, decodeRequest{token: token, file: file})
	return d.err
}

func (d *queuedDecoder) last() decodeRequest {
	return d.requests[len(d.requests)-1]
}

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func writeText(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newTestStager() (*Stager, *recordingAlerter, *queuedDecoder) {
	alerter := &recordingAlerter{}
	decoder := &queuedDecoder{}
	return NewStager(alerter, decoder), alerter, decoder
}

func TestStageRejectsNonImage(t *testing.T) {
	s, alerter, decoder := newTestStager()

	ok := s.Stage(File{Name: "notes.txt", Type: "text/plain"})

	assert.False(t, ok)
	assert.Equal(t, []string{RejectMessage}, alerter.messages)
	assert.Empty(t, decoder.requests)
	_, pending := s.Pending()
	assert.False(t, pending)
	assert.True(t, s.PromptVisible())
}

func TestStageRejectionKeepsExistingPreview(t *testing.T) {
	s, _, decoder := newTestStager()
	require.True(t, s.Stage(File{Name: "a.png", Type: "image/png"}))
	require.True(t, s.Decoded(decoder.last().token, Preview{DataURL: "data:image/png;base64,AA=="}, nil))

	s.Stage(File{Name: "b.pdf", Type: "application/pdf"})

	f, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, "a.png", f.Name)
	p, ok := s.Preview()
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AA==", p.DataURL)
}

func TestPreviewAppearsOnlyAfterDecode(t *testing.T) {
	s, _, decoder := newTestStager()

	require.True(t, s.Stage(File{Name: "a.png", Type: "image/png"}))
	_, pending := s.Pending()
	assert.True(t, pending)
	assert.True(t, s.PromptVisible(), "prompt must stay until decode completes")

	require.Len(t, decoder.requests, 1)
	assert.True(t, s.Decoded(decoder.last().token, Preview{DataURL: "data:,"}, nil))
	assert.False(t, s.PromptVisible())
}

func TestStaleDecodeIsDiscarded(t *testing.T) {
	s, _, decoder := newTestStager()

	s.Stage(File{Name: "a.png", Type: "image/png"})
	first := decoder.last().token
	s.Stage(File{Name: "b.png", Type: "image/png"})
	second := decoder.last().token

	assert.False(t, s.Decoded(first, Preview{DataURL: "a"}, nil))
	assert.True(t, s.PromptVisible())
	assert.True(t, s.Decoded(second, Preview{DataURL: "b"}, nil))

	f, _ := s.Pending()
	assert.Equal(t, "b.png", f.Name)
}

func TestClearWhileDecodePending(t *testing.T) {
	s, _, decoder := newTestStager()

	s.Stage(File{Name: "a.png", Type: "image/png"})
	token := decoder.last().token
	s.Clear()

	assert.False(t, s.Decoded(token, Preview{DataURL: "a"}, nil))
	_, pending := s.Pending()
	assert.False(t, pending)
	assert.True(t, s.PromptVisible())
}

func TestDecodeFailureDropsAttachment(t *testing.T) {
	s, alerter, decoder := newTestStager()

	s.Stage(File{Name: "a.png", Type: "image/png"})
	assert.False(t, s.Decoded(decoder.last().token, Preview{}, errors.New("boom")))

	_, pending := s.Pending()
	assert.False(t, pending)
	assert.Equal(t, []string{UnreadableMessage}, alerter.messages)
}

func TestDecodeHandOffFailureUndoesStaging(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "face.png", 2, 2)
	s, alerter, decoder := newTestStager()
	decoder.err = errors.New("circuit breaker is open")

	assert.False(t, s.Pick(path))

	_, pending := s.Pending()
	assert.False(t, pending)
	assert.True(t, s.PromptVisible())
	assert.Empty(t, s.InputValue())
	assert.Equal(t, []string{UnreadableMessage}, alerter.messages)

	// a late decode for the abandoned staging is ignored
	assert.False(t, s.Decoded(decoder.last().token, Preview{Bytes: 1}, nil))
	assert.True(t, s.PromptVisible())

	// the same file can be picked again once the core accepts work
	decoder.err = nil
	assert.True(t, s.Pick(path))
	_, pending = s.Pending()
	assert.True(t, pending)
}

func TestClearIsIdempotent(t *testing.T) {
	s, _, _ := newTestStager()
	s.Clear()
	s.Clear()
	_, pending := s.Pending()
	assert.False(t, pending)
	assert.True(t, s.PromptVisible())
	assert.Empty(t, s.InputValue())
}

func TestPickClearPickSameFile(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "face.png", 4, 3)
	s, _, decoder := newTestStager()

	require.True(t, s.Pick(path))
	require.True(t, s.Decoded(decoder.last().token, Preview{DataURL: "x"}, nil))

	// same selection again without clearing fires no change
	assert.False(t, s.Pick(path))
	assert.Len(t, decoder.requests, 1)

	s.Clear()
	assert.True(t, s.PromptVisible())
	assert.Empty(t, s.InputValue())

	assert.True(t, s.Pick(path))
	assert.Len(t, decoder.requests, 2)
	f, ok := s.Pending()
	require.True(t, ok)
	assert.Equal(t, "face.png", f.Name)
	assert.Equal(t, "image/png", f.Type)
}

func TestPickStagesFirstFileOnly(t *testing.T) {
	dir := t.TempDir()
	first := writePNG(t, dir, "one.png", 1, 1)
	second := writePNG(t, dir, "two.png", 1, 1)
	s, alerter, decoder := newTestStager()

	assert.True(t, s.Pick(first, second))
	assert.Len(t, decoder.requests, 1)
	assert.Equal(t, "one.png", decoder.last().file.Name)
	assert.Empty(t, alerter.messages)
}

func TestPickMissingFile(t *testing.T) {
	s, alerter, decoder := newTestStager()

	assert.False(t, s.Pick(filepath.Join(t.TempDir(), "missing.png")))
	assert.Equal(t, []string{UnreadableMessage}, alerter.messages)
	assert.Empty(t, decoder.requests)
}

func TestDropZoneTogglesActiveAndStagesFirstFile(t *testing.T) {
	s, alerter, decoder := newTestStager()
	z := NewDropZone(s)

	assert.True(t, z.Handle(DragEvent{Kind: DragEnter}))
	assert.True(t, z.Active())
	assert.True(t, z.Handle(DragEvent{Kind: DragOver}))
	assert.True(t, z.Active())
	assert.True(t, z.Handle(DragEvent{Kind: DragLeave}))
	assert.False(t, z.Active())

	z.Handle(DragEvent{Kind: DragEnter})
	consumed := z.Handle(DragEvent{Kind: Drop, Files: []File{
		{Name: "a.jpg", Type: "image/jpeg"},
		{Name: "b.txt", Type: "text/plain"},
	}})
	assert.True(t, consumed)
	assert.False(t, z.Active())
	assert.Empty(t, alerter.messages)
	require.Len(t, decoder.requests, 1)
	assert.Equal(t, "a.jpg", decoder.last().file.Name)
}

func TestDropZoneRejectsNonImage(t *testing.T) {
	s, alerter, _ := newTestStager()
	z := NewDropZone(s)

	z.Handle(DragEvent{Kind: Drop, Files: []File{{Name: "b.txt", Type: "text/plain"}}})

	assert.Equal(t, []string{RejectMessage}, alerter.messages)
	_, pending := s.Pending()
	assert.False(t, pending)
}

func TestOpenDerivesType(t *testing.T) {
	dir := t.TempDir()

	f, err := Open(writePNG(t, dir, "pic.JPG", 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", f.Type)

	f, err = Open(writeText(t, dir, "notes.txt", "hello"))
	require.NoError(t, err)
	assert.False(t, f.IsImage())

	// no extension: sniffed
	f, err = Open(writePNG(t, dir, "noext", 1, 1))
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.Type)

	_, err = Open(dir)
	assert.Error(t, err)
}

func TestDecodeBuildsDataURL(t *testing.T) {
	dir := t.TempDir()
	f, err := Open(writePNG(t, dir, "pic.png", 7, 5))
	require.NoError(t, err)

	p, err := Decode(f)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.DataURL, "data:image/png;base64,"))
	assert.Equal(t, 7, p.Width)
	assert.Equal(t, 5, p.Height)
	assert.Equal(t, int(f.Size), p.Bytes)
}
