package ui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jcommon "github.com/tranvictor/ensreader/common"
)

func TestWriterUITable(t *testing.T) {
	buf := &bytes.Buffer{}
	u := NewWriterUI(buf)
	u.Table([]string{"name", "owner"}, [][]string{
		{"alice.eth", "0xaaaa"},
		{"b.eth", "-"},
	})
	lines := strings.Split(strings.TrimRight(ansi.Strip(buf.String()), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "┌───────────┬────────┐", lines[0])
	assert.Equal(t, "│ name      │ owner  │", lines[1])
	assert.Equal(t, "│ b.eth     │ -      │", lines[4])
	assert.Equal(t, "└───────────┴────────┘", lines[5])
}

func TestWriterUIIndentAndKeyValue(t *testing.T) {
	buf := &bytes.Buffer{}
	u := NewWriterUI(buf)
	u.Section("alice.eth")
	u.Indent().KeyValue([][2]string{{"owner", "0xaaaa"}, {"resolver", "0xbbbb"}})
	assert.Contains(t, buf.String(), "=================== alice.eth ===================")
	assert.Contains(t, buf.String(), "  owner     0xaaaa\n")
	assert.Contains(t, buf.String(), "  resolver  0xbbbb\n")

	buf.Reset()
	u.Indent().Writer().Write([]byte("a\nb\n"))
	assert.Equal(t, "  a\n  b\n", buf.String())
}

func TestRecordingUI(t *testing.T) {
	r := NewRecordingUI()
	r.Info("owner: %s", r.Style(StyledText{Text: "0xaaaa", Severity: SeveritySuccess}))
	r.Indent().Warn("expired")
	r.Table(nil, [][]string{{"a", "b"}})
	r.Writer().Write([]byte("{}"))

	assert.Equal(t, []string{"owner: 0xaaaa"}, r.InfoMessages())
	assert.Equal(t, 1, r.Entries()[1].Indent)
	assert.Equal(t, []string{"a | b"}, r.TableRows())
	assert.True(t, r.HasMessage("EXPIRED"))
	assert.Equal(t, "{}", r.Output())

	out, err := json.Marshal(StyledText{Text: "x", Severity: SeverityError})
	require.NoError(t, err)
	assert.Equal(t, `"x"`, string(out))
}

func TestStyledName(t *testing.T) {
	known := StyledName(jcommon.Address{Address: "0xaa", Desc: "alice.eth"})
	assert.Equal(t, StyledText{Text: "alice.eth", Severity: SeveritySuccess}, known)
	unknown := StyledName(jcommon.Address{Address: "0xaa", Desc: jcommon.UnknownDesc})
	assert.Equal(t, SeverityWarn, unknown.Severity)
	assert.Equal(t, "unknown", unknown.Text)
}
