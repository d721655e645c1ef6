package style

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/stylecheck/docx"
	"github.com/tsawler/stylecheck/internal/docxtest"
	"github.com/tsawler/stylecheck/rules"
	"github.com/tsawler/stylecheck/storage"
)

// memStore records what it saves.
type memStore struct {
	hint string
	data []byte
	err  error
}

func (m *memStore) Save(_ context.Context, nameHint string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.hint, m.data = nameHint, data
	return "mem://" + nameHint, nil
}

func manuscript(t *testing.T) []byte {
	t.Helper()
	return docxtest.New(t,
		docxtest.Styled("Title", "sleep and memory")+
			docxtest.Para("Jane Doe")+
			docxtest.Para("Abstract")+
			docxtest.Para("Short abstract.")+
			docxtest.Para("Keywords: Sleep")+
			docxtest.Para("Earlier work (Smith , 2020) agrees.")+
			docxtest.SectPr(720))
}

func TestRegistry_UnknownStyle(t *testing.T) {
	// Garbage input proves the tag is rejected before anything is parsed.
	_, err := Default().New("MLA", []byte("not a document"))

	var use *UnknownStyleError
	require.ErrorAs(t, err, &use)
	assert.Equal(t, "MLA", use.Tag)
	assert.EqualError(t, err, `unknown style "MLA"`)
}

func TestRegistry_Validate(t *testing.T) {
	r := Default()
	assert.NoError(t, r.Validate("APA"))
	assert.NoError(t, r.Validate("Custom"))

	var use *UnknownStyleError
	require.ErrorAs(t, r.Validate("MLA"), &use)
	assert.Equal(t, "MLA", use.Tag)
}

func TestRegistry_ExactMatch(t *testing.T) {
	_, err := Default().New("apa", nil)
	assert.Error(t, err)
	assert.Equal(t, []string{"APA", "Custom"}, Default().Tags())
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("Plain", NewCustom)

	v, err := r.New("Plain", manuscript(t))
	require.NoError(t, err)
	assert.Equal(t, "Custom", v.Name())
}

func TestAPA_Flow(t *testing.T) {
	store := &memStore{}
	v, err := Default().New("APA", manuscript(t), WithStore(store))
	require.NoError(t, err)
	assert.Equal(t, "APA", v.Name())

	doc, err := v.StartFlow(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)

	rep := v.CreateReport()
	assert.Contains(t, rep.Format.Issues, "section 1: Margins were corrected to 1 inch on all sides")
	require.Len(t, rep.Citation.Issues, 1)
	assert.Contains(t, rep.Format.RequiredActions, "Add Author Note to upper half of first page")

	path, err := v.UpdatedDocument(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "mem://alice", path)
	assert.Equal(t, "alice", store.hint)

	out, err := docx.Load(store.data)
	require.NoError(t, err)
	assert.Equal(t, docx.Uniform(docx.Inch), out.Sections()[0].Margins())
}

func TestAPA_OptionalChecks(t *testing.T) {
	v, err := Default().New("APA", manuscript(t), WithAPAOptions(rules.APAOptions{RunningHead: true, PageNumbers: true}))
	require.NoError(t, err)

	doc, err := v.StartFlow(context.Background())
	require.NoError(t, err)

	require.NotNil(t, doc.Sections()[0].Header())
	assert.Contains(t, v.CreateReport().Format.Issues, "header: Page number added to header, right-aligned")
}

func TestCustom_Unchanged(t *testing.T) {
	in := manuscript(t)
	v, err := Default().New("Custom", in)
	require.NoError(t, err)

	_, err = v.StartFlow(context.Background())
	require.NoError(t, err)

	rep := v.CreateReport()
	assert.Zero(t, rep.Format.Len()+rep.Citation.Len())

	out, err := v.Serialize()
	require.NoError(t, err)
	orig, err := docx.Load(in)
	require.NoError(t, err)
	got, err := docx.Load(out)
	require.NoError(t, err)
	require.Len(t, got.Paragraphs(), len(orig.Paragraphs()))
	for i, p := range orig.Paragraphs() {
		assert.Equal(t, p.Text(), got.Paragraphs()[i].Text())
		assert.Equal(t, p.Style(), got.Paragraphs()[i].Style())
	}
}

func TestFlow_Malformed(t *testing.T) {
	v, err := Default().New("APA", []byte("plain text, not a zip"))
	require.NoError(t, err)

	_, err = v.StartFlow(context.Background())
	var mde *docx.MalformedDocumentError
	assert.ErrorAs(t, err, &mde)

	_, err = v.Serialize()
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestFlow_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := Default().New("APA", manuscript(t))
	require.NoError(t, err)
	_, err = v.StartFlow(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlow_NoStore(t *testing.T) {
	v, err := Default().New("Custom", manuscript(t))
	require.NoError(t, err)
	_, err = v.StartFlow(context.Background())
	require.NoError(t, err)

	_, err = v.UpdatedDocument(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestFlow_StoreError(t *testing.T) {
	boom := errors.New("disk full")
	v, err := Default().New("Custom", manuscript(t), WithStore(&memStore{err: boom}))
	require.NoError(t, err)
	_, err = v.StartFlow(context.Background())
	require.NoError(t, err)

	_, err = v.UpdatedDocument(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)
}

func TestFlow_FileStore(t *testing.T) {
	v, err := Default().New("APA", manuscript(t), WithStore(storage.NewFileStore(t.TempDir())))
	require.NoError(t, err)
	_, err = v.StartFlow(context.Background())
	require.NoError(t, err)

	path, err := v.UpdatedDocument(context.Background(), "bob")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = docx.Load(data)
	assert.NoError(t, err)
}

func TestFlow_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	v, err := Default().New("APA", manuscript(t), WithLogger(logger))
	require.NoError(t, err)
	_, err = v.StartFlow(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"variant.start"`)
	assert.Contains(t, out, `"msg":"workflow.check"`)
	assert.Contains(t, out, `"check":"citations"`)
	assert.Contains(t, out, `"msg":"variant.done"`)
}
