package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/registrar/internal/config"
	"github.com/rshade/registrar/internal/table"
)

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		fallback string
		want     string
		wantErr  bool
	}{
		{name: "flag wins", flag: "json", fallback: "table", want: "json"},
		{name: "fallback", flag: "", fallback: "plain", want: "plain"},
		{name: "case insensitive", flag: " YAML ", fallback: "table", want: "yaml"},
		{name: "unknown", flag: "xml", fallback: "table", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveFormat(tt.flag, tt.fallback)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOutput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestServerSideOverride(t *testing.T) {
	tests := []struct {
		name    string
		params  listParams
		view    config.ViewConfig
		want    *bool
		wantErr error
	}{
		{name: "no override"},
		{name: "flag server", params: listParams{serverSide: true}, want: ptr(true)},
		{name: "flag client", params: listParams{clientSide: true}, want: ptr(false)},
		{name: "config server", view: config.ViewConfig{Mode: config.ModeServer}, want: ptr(true)},
		{name: "config client", view: config.ViewConfig{Mode: config.ModeClient}, want: ptr(false)},
		{
			name:   "flag beats config",
			params: listParams{clientSide: true},
			view:   config.ViewConfig{Mode: config.ModeServer},
			want:   ptr(false),
		},
		{name: "both flags", params: listParams{serverSide: true, clientSide: true}, wantErr: ErrConflictingMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := serverSideOverride(tt.params, tt.view)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteYAML_RowOrder(t *testing.T) {
	row := table.NewRow(
		table.Field{Key: "zeta", Value: int64(1)},
		table.Field{Key: "alpha", Value: "Ada"},
		table.Field{Key: "nested", Value: table.NewRow(table.Field{Key: "b", Value: true}, table.Field{Key: "a", Value: nil})},
		table.Field{Key: "tags", Value: []any{"x", int64(2)}},
	)

	node, err := yamlMapping("rows", []table.Row{row})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, node))
	assert.Equal(t, `rows:
  - zeta: 1
    alpha: Ada
    nested:
      b: true
      a: null
    tags:
      - x
      - 2
`, buf.String())
}

func TestYAMLMapping_Errors(t *testing.T) {
	_, err := yamlMapping("odd")
	require.Error(t, err)

	_, err = yamlMapping(1, "value")
	require.Error(t, err)
}

func TestRenderSnapshot_Layouts(t *testing.T) {
	e := table.New(table.DefaultConfig(), table.ClientDriven{})
	e.SetProps(table.Props{
		Rows:         []table.Row{table.NewRow(table.Field{Key: "code", Value: "CS"}, table.Field{Key: "name", Value: "Computer Science"})},
		CardTitleKey: "name",
	})
	v := e.View()

	assert.Contains(t, renderSnapshot(v, formatCards, 0, 80), "╭")
	assert.Contains(t, renderSnapshot(v, formatTable, 40, 80), "╭", "narrow tables become cards")
	assert.NotContains(t, renderSnapshot(v, formatTable, 100, 80), "╭")
	assert.Equal(t, "code  name\n----  ----------------\nCS    Computer Science", renderSnapshot(v, formatPlain, 0, 80))
}
