package topics_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/attachlink/pkg/cobrax/topics"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func source() fstest.MapFS {
	return fstest.MapFS{
		"conversion.md":      {Data: []byte("# Conversion\n\nHow files move")},
		"option-dry-run.txt": {Data: []byte("Dry run explained")},
		"nested/sync.txt":    {Data: []byte("Sync explained")},
		"notes.json":         {Data: []byte("{}")},
	}
}

func TestLoad_DefaultExtensions(t *testing.T) {
	tm := topics.New(source(), topics.Options{})
	require.NoError(t, tm.Load())

	assert.Equal(t, []string{"conversion", "option-dry-run", "sync"}, tm.ListTopics())

	topic, ok := tm.GetTopic("sync")
	require.True(t, ok)
	assert.Equal(t, "Sync explained", topic.Content)
	assert.Equal(t, "nested/sync.txt", topic.FilePath)
}

func TestLoad_CustomExtensions(t *testing.T) {
	tm := topics.New(source(), topics.Options{Extensions: []string{".json"}})
	require.NoError(t, tm.Load())
	assert.Equal(t, []string{"notes"}, tm.ListTopics())
}

func TestGetTopic_FlagSpelling(t *testing.T) {
	tm := topics.New(source(), topics.Options{})
	require.NoError(t, tm.Load())

	for _, name := range []string{"dry-run", "--dry-run", "option-dry-run"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-dry-run", topic.Name)
	}
	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

type upperRenderer struct{ formats []string }

func (r *upperRenderer) Render(content, format string) string {
	r.formats = append(r.formats, format)
	return "RENDERED:" + content
}

func newRoot(t *testing.T, renderer topics.Renderer) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "attachlink", Run: func(cmd *cobra.Command, args []string) {}}
	root.AddCommand(&cobra.Command{Use: "convert", Short: "Convert attachments", Run: func(cmd *cobra.Command, args []string) {}})
	_, err := topics.Initialize(root, source(), topics.Options{Renderer: renderer})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	return root, out
}

func TestHelpCommand_Topic(t *testing.T) {
	renderer := &upperRenderer{}
	root, out := newRoot(t, renderer)

	root.SetArgs([]string{"help", "conversion"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "RENDERED:# Conversion\n\nHow files move", out.String())
	assert.Equal(t, []string{".md"}, renderer.formats)
}

func TestHelpCommand_Index(t *testing.T) {
	root, out := newRoot(t, nil)

	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "General topics:\n  conversion\n  sync\n")
	assert.Contains(t, out.String(), "Option topics:\n  --dry-run\n")
	assert.Contains(t, out.String(), "Use 'attachlink help <topic>'")
}

func TestHelpCommand_FallsBackToCommandHelp(t *testing.T) {
	root, out := newRoot(t, nil)

	root.SetArgs([]string{"help", "convert"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Convert attachments")
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "x", (&topics.PlainRenderer{}).Render("x", ".md"))
}

func TestGlamourRenderer_NonMarkdownUnchanged(t *testing.T) {
	r := topics.NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}
