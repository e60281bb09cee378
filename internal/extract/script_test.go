package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptExtractor_ClassNameProp(t *testing.T) {
	t.Parallel()

	content := `export function Button({label}) {
  return (
    <button className="btn btn-primary">
      <span className='icon'>{label}</span>
    </button>
  );
}`

	names := classNames(t, ScriptExtractor{}, content)
	assert.Equal(t, []string{"btn", "btn-primary", "icon"}, names)
}

func TestScriptExtractor_PlainClassAttribute(t *testing.T) {
	t.Parallel()

	// Web components and lit-style templates keep the HTML attribute name.
	names := classNames(t, ScriptExtractor{}, "const tpl = html`<div class=\"panel wide\"></div>`;")
	assert.Equal(t, []string{"panel", "wide"}, names)
}

func TestScriptExtractor_NoMatches(t *testing.T) {
	t.Parallel()

	defs, err := ScriptExtractor{}.Extract("util.ts", []byte("export const add = (a: number, b: number) => a + b;"))
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestScriptExtractor_SetsProvenance(t *testing.T) {
	t.Parallel()

	defs, err := ScriptExtractor{}.Extract("src/App.tsx", []byte(`<div className="app"></div>`))
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "src/App.tsx", defs[0].Source.Path)
	assert.Equal(t, "script", defs[0].Source.Format)
}
