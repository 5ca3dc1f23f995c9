package xmledit_test

import (
	"testing"

	"github.com/ericchiang/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gozen/pkg/edittree"
	"github.com/yaklabco/gozen/pkg/edittree/xmledit"
	"github.com/yaklabco/gozen/pkg/textrange"
)

func assertConsistent(t *testing.T, tag *xmledit.Tag) {
	t.Helper()

	fresh, err := xmledit.Parse(tag.Source())
	require.NoError(t, err)

	assert.Equal(t, fresh.Name(), tag.Name())
	assert.Equal(t, fresh.NameRange(false), tag.NameRange(false))
	require.Equal(t, fresh.Len(), tag.Len())

	for i, el := range tag.List() {
		want := fresh.GetIndex(i)
		assert.Equal(t, want.Name(), el.Name(), "attribute %d", i)
		assert.Equal(t, want.Value(), el.Value(), "attribute %d", i)
		assert.Equal(t, want.HasValue(), el.HasValue(), "attribute %d", i)
		assert.Equal(t, want.NameRange(false), el.NameRange(false), "attribute %d name", i)
		assert.Equal(t, want.ValueRange(false), el.ValueRange(false), "attribute %d value", i)
		assert.Equal(t, want.FullRange(false), el.FullRange(false), "attribute %d full", i)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	src := `<a href="http://x" title='t' disabled>`
	tag, err := xmledit.Parse(src)
	require.NoError(t, err)

	assert.Equal(t, "a", tag.Name())
	assert.Equal(t, textrange.New(1, 2), tag.NameRange(false))
	require.Equal(t, 3, tag.Len())

	href := tag.Get("href")
	assert.Equal(t, "http://x", href.Value())
	assert.Equal(t, textrange.New(3, 7), href.NameRange(false))
	assert.Equal(t, textrange.New(9, 17), href.ValueRange(false))
	assert.Equal(t, textrange.New(3, 18), href.Range(false))
	assert.Equal(t, textrange.New(2, 18), href.FullRange(false))
	assert.Equal(t, edittree.Style{Before: " ", Separator: "=", Quote: `"`}, href.Style())

	assert.Equal(t, "'", tag.Get("title").Style().Quote)

	disabled := tag.Get("disabled")
	assert.False(t, disabled.HasValue())
	assert.Equal(t, textrange.New(29, 37), disabled.Range(false))
}

func TestEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		edit func(tag *xmledit.Tag)
		want string
	}{
		{
			name: "keeps quote style",
			src:  `<a title='t'>`,
			edit: func(tag *xmledit.Tag) { tag.SetValue("title", "new") },
			want: `<a title='new'>`,
		},
		{
			name: "value for boolean attribute",
			src:  `<input disabled>`,
			edit: func(tag *xmledit.Tag) { tag.Get("disabled").SetValue("disabled") },
			want: `<input disabled="disabled">`,
		},
		{
			name: "add copies previous",
			src:  `<a  href = 'x'>`,
			edit: func(tag *xmledit.Tag) { tag.Add("id", "main") },
			want: `<a  href = 'x'  id = 'main'>`,
		},
		{
			name: "add to empty tag",
			src:  `<br/>`,
			edit: func(tag *xmledit.Tag) { tag.Add("class", "clear") },
			want: `<br class="clear"/>`,
		},
		{
			name: "insert before",
			src:  `<img src="a.png" alt="">`,
			edit: func(tag *xmledit.Tag) { tag.Insert(1, "width", "10") },
			want: `<img src="a.png" width="10" alt="">`,
		},
		{
			name: "unquoted value",
			src:  `<input value=5 type=text>`,
			edit: func(tag *xmledit.Tag) { tag.SetValue("value", "10") },
			want: `<input value=10 type=text>`,
		},
		{
			name: "remove and rename",
			src:  `<div id="a" class="b" hidden>`,
			edit: func(tag *xmledit.Tag) {
				tag.Remove("id")
				tag.SetName("section")
				tag.Get("class").SetName("data-class")
			},
			want: `<section data-class="b" hidden>`,
		},
		{
			name: "empty value",
			src:  `<a href="">`,
			edit: func(tag *xmledit.Tag) { tag.SetValue("href", "#top") },
			want: `<a href="#top">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tag, err := xmledit.Parse(tt.src)
			require.NoError(t, err)

			tt.edit(tag)
			assert.Equal(t, tt.want, tag.Source())
			assertConsistent(t, tag)
		})
	}
}

func TestEmptyValueEdits(t *testing.T) {
	t.Parallel()

	tag, err := xmledit.Parse(`<img src=x>`)
	require.NoError(t, err)
	src := tag.Get("src")

	src.SetValue("")
	assert.Equal(t, `<img src="">`, tag.Source())
	assertConsistent(t, tag)

	tag.Add("alt", "a")
	assert.Equal(t, `<img src="" alt="a">`, tag.Source())
	assertConsistent(t, tag)

	src.SetValue("y")
	assert.Equal(t, `<img src="y" alt="a">`, tag.Source())
	assertConsistent(t, tag)

	tag, err = xmledit.Parse(`<input type=text>`)
	require.NoError(t, err)

	tag.Add("value", "")
	tag.Insert(0, "id", "")
	tag.Get("type").SetValue("")
	assert.Equal(t, `<input id="" type="" value="">`, tag.Source())
	assertConsistent(t, tag)
	require.Equal(t, 3, tag.Len())
}

func TestDecoded(t *testing.T) {
	t.Parallel()

	tag, err := xmledit.Parse(`<a title="a &amp; b &lt;c&gt;">`)
	require.NoError(t, err)

	raw, _ := tag.Value("title")
	assert.Equal(t, "a &amp; b &lt;c&gt;", raw)

	decoded, ok := tag.Decoded("title")
	assert.True(t, ok)
	assert.Equal(t, "a & b <c>", decoded)

	_, ok = tag.Decoded("href")
	assert.False(t, ok)
}

func TestDocumentMatchesSelectors(t *testing.T) {
	t.Parallel()

	tag, err := xmledit.Parse(`<a class="link external" href="#">`)
	require.NoError(t, err)

	sel, err := css.Parse("a.link")
	require.NoError(t, err)
	assert.Len(t, sel.Select(tag.Document()), 1)

	sel, err = css.Parse("span")
	require.NoError(t, err)
	assert.Empty(t, sel.Select(tag.Document()))
}

func TestInvalidTag(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "plain text", "</a>", "<!-- x -->"} {
		_, err := xmledit.Parse(src)
		require.ErrorIs(t, err, xmledit.ErrInvalidTag, src)
	}
}

func TestExtractTag(t *testing.T) {
	t.Parallel()

	content := `<div class="a"><span>text</span></div>`

	tests := []struct {
		name     string
		pos      int
		backward bool
		want     string
		ok       bool
	}{
		{name: "inside attribute", pos: 7, want: `<div class="a">`, ok: true},
		{name: "text backward", pos: 22, backward: true, want: "<span>", ok: true},
		{name: "text forward", pos: 22},
		{name: "before span", pos: 15, want: "<span>", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, ok := xmledit.ExtractTag(content, tt.pos, tt.backward)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, r.Substring(content))
			}
		})
	}
}

func TestParseFromPosition(t *testing.T) {
	t.Parallel()

	content := `<p>see <a href="/x" title="go">here</a></p>`

	tag, err := xmledit.ParseFromPosition(content, 12, false)
	require.NoError(t, err)
	require.NotNil(t, tag)

	assert.Equal(t, "a", tag.Name())
	assert.Equal(t, "/x", tag.Get("href").ValueRange(true).Substring(content))
	assert.Equal(t, "title", tag.ItemFromPosition(22, true).Name())

	tag, err = xmledit.ParseFromPosition(content, 35, true)
	require.NoError(t, err)
	assert.Nil(t, tag)
}
