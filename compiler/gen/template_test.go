package gen

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pgentity"
)

func TestTemplateRenderer(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/entity.tmpl": {Data: []byte(`{{ .EntityName }}:{{ range .Columns }} {{ .Name }}={{ .Type }}{{ end }}`)},
		"templates/broken.tmpl": {Data: []byte(`{{ .NoSuchField }}`)},
		"templates/funcs.tmpl":  {Data: []byte(`{{ camel "a_b" }} {{ pascal "user_id" }} {{ quote "x\"y" }} {{ pybool true }}`)},
	}
	r, err := NewTemplateRenderer(fsys, "templates/*.tmpl")
	require.NoError(t, err)

	e := &Entity{
		TableName:  "user_account",
		EntityName: "UserAccount",
		Columns:    []*Field{{Name: "id", Type: "Int"}, {Name: "tags", Type: "Array(Text)"}},
	}

	t.Run("render", func(t *testing.T) {
		out, err := r.Render("entity.tmpl", e)
		require.NoError(t, err)
		assert.Equal(t, "UserAccount: id=Int tags=Array(Text)", string(out))
	})

	t.Run("funcs", func(t *testing.T) {
		out, err := r.Render("funcs.tmpl", nil)
		require.NoError(t, err)
		assert.Equal(t, `AB UserID "x\"y" True`, string(out))
	})

	t.Run("error carries table", func(t *testing.T) {
		_, err := r.Render("broken.tmpl", e)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pgentity.ErrTemplateRender))
		var re *pgentity.RenderError
		require.ErrorAs(t, err, &re)
		assert.Equal(t, "broken.tmpl", re.Template)
		assert.Equal(t, "user_account", re.Table)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := r.Render("missing.tmpl", e)
		assert.True(t, pgentity.IsRenderError(err))
	})
}

func TestNewTemplateRenderer_ParseError(t *testing.T) {
	fsys := fstest.MapFS{"bad.tmpl": {Data: []byte(`{{ if }}`)}}
	_, err := NewTemplateRenderer(fsys, "*.tmpl")
	require.Error(t, err)
	assert.Panics(t, func() { MustTemplateRenderer(fsys, "*.tmpl") })
}

func TestRenderFunc(t *testing.T) {
	var r Renderer = RenderFunc(func(name string, _ any) ([]byte, error) {
		return []byte(name), nil
	})
	out, err := r.Render("x", nil)
	require.NoError(t, err)
	assert.Equal(t, "x", string(out))
}
