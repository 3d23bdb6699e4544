package workapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationshipIDs(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"to-many", `[{"type":"mailbox","id":"a"},{"type":"mailbox","id":"b"}]`, []string{"a", "b"}},
		{"to-one", `{"type":"mailbox","id":"a"}`, []string{"a"}},
		{"null", `null`, nil},
		{"missing", ``, nil},
		{"empty list", `[]`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := relationship{Data: json.RawMessage(tt.data)}.ids()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextCursor(t *testing.T) {
	got, err := nextCursor("/emails?page[cursor]=abc&page[size]=10")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	got, err = nextCursor("")
	require.NoError(t, err)
	assert.Empty(t, got)
}
