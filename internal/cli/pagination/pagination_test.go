package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/registrar/internal/pager"
	"github.com/rshade/registrar/internal/table"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr error
	}{
		{
			name:   "valid default",
			params: *NewParams(25),
		},
		{
			name:   "valid client sort",
			params: Params{Page: 2, PageSize: 10, Sort: "lastName:desc"},
		},
		{
			name:   "valid server without sort",
			params: Params{Page: 3, PageSize: 50, ServerSide: true},
		},
		{
			name:    "negative page",
			params:  Params{Page: -1},
			wantErr: ErrInvalidPage,
		},
		{
			name:    "page size too large",
			params:  Params{PageSize: 500},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "negative page size",
			params:  Params{PageSize: -5},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "sort with server side",
			params:  Params{Sort: "gpa", ServerSide: true},
			wantErr: ErrSortServerSide,
		},
		{
			name:    "bad sort order",
			params:  Params{Sort: "gpa:up"},
			wantErr: ErrInvalidSortOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		name    string
		sortStr string
		want    table.SortState
		wantErr error
	}{
		{name: "empty", sortStr: "", want: table.SortState{Direction: table.SortAsc}},
		{name: "field only", sortStr: "lastName", want: table.SortState{Key: "lastName", Direction: table.SortAsc}},
		{name: "desc", sortStr: "gpa:desc", want: table.SortState{Key: "gpa", Direction: table.SortDesc}},
		{name: "upper case order", sortStr: "gpa:DESC", want: table.SortState{Key: "gpa", Direction: table.SortDesc}},
		{name: "spaces", sortStr: " credits : asc ", want: table.SortState{Key: "credits", Direction: table.SortAsc}},
		{name: "too many colons", sortStr: "a:b:c", wantErr: ErrInvalidSortFormat},
		{name: "empty field", sortStr: ":desc", wantErr: ErrEmptySortField},
		{name: "bad order", sortStr: "gpa:sideways", wantErr: ErrInvalidSortOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.sortStr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_PageIndex(t *testing.T) {
	assert.Equal(t, 0, Params{}.PageIndex())
	assert.Equal(t, 0, Params{Page: 1}.PageIndex())
	assert.Equal(t, 4, Params{Page: 5}.PageIndex())

	assert.Equal(t, 25, Params{}.EffectivePageSize(25))
	assert.Equal(t, 10, Params{PageSize: 10}.EffectivePageSize(25))
}

func TestNewMeta(t *testing.T) {
	tests := []struct {
		name       string
		state      pager.State
		serverSide bool
		want       Meta
	}{
		{
			name:  "first of many",
			state: pager.State{PageIndex: 0, PageSize: 25, TotalPages: 3, TotalElements: 60},
			want: Meta{
				CurrentPage: 1, PageSize: 25, TotalPages: 3, TotalItems: 60,
				HasPrevious: false, HasNext: true, Mode: ModeClient,
			},
		},
		{
			name:       "last server page",
			state:      pager.State{PageIndex: 2, PageSize: 25, TotalPages: 3, TotalElements: 60},
			serverSide: true,
			want: Meta{
				CurrentPage: 3, PageSize: 25, TotalPages: 3, TotalItems: 60,
				HasPrevious: true, HasNext: false, Mode: ModeServer,
			},
		},
		{
			name:  "no pages",
			state: pager.State{PageSize: 25},
			want: Meta{
				CurrentPage: 1, PageSize: 25, TotalPages: 1, Mode: ModeClient,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMeta(tt.state, tt.serverSide))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	cols := []table.Column{{Key: "studentId"}, {Key: "lastName"}, {Key: "gpa"}}

	assert.NoError(t, ValidateSortField(table.SortState{}, cols))
	assert.NoError(t, ValidateSortField(table.SortState{Key: "gpa", Direction: table.SortDesc}, cols))
	assert.NoError(t, ValidateSortField(table.SortState{Key: "anything"}, nil))

	err := ValidateSortField(table.SortState{Key: "email"}, cols)
	require.ErrorIs(t, err, ErrInvalidSortField)
	assert.Contains(t, err.Error(), "gpa, lastName, studentId")

	assert.Equal(t, []string{"gpa", "lastName", "studentId"}, SortFields(cols))
}
