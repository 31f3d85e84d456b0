package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbryoListSchema_ValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(embryoListSchema), &v), "embedded schema should be valid JSON")
	assert.Equal(t, "object", v["type"])
}

func TestValidateEmbryoList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "single record",
			body:    `{"embryo_list":[{"properties":[{"name":"url","value":"http://x"}]}]}`,
			wantErr: false,
		},
		{
			name:    "empty list",
			body:    `{"embryo_list":[]}`,
			wantErr: false,
		},
		{
			name:    "record without properties entries",
			body:    `{"embryo_list":[{"properties":[]}]}`,
			wantErr: false,
		},
		{
			name:    "extra fields are tolerated",
			body:    `{"embryo_list":[{"properties":[{"name":"url","value":"http://x","rank":1}],"score":3}],"took_ms":4}`,
			wantErr: false,
		},
		{
			name:    "bare JSON string",
			body:    `"http://y"`,
			wantErr: true,
		},
		{
			name:    "plain text",
			body:    `http://y`,
			wantErr: true,
		},
		{
			name:    "empty body",
			body:    ``,
			wantErr: true,
		},
		{
			name:    "missing embryo_list",
			body:    `{"results":[]}`,
			wantErr: true,
		},
		{
			name:    "null list",
			body:    `{"embryo_list":null}`,
			wantErr: true,
		},
		{
			name:    "record missing properties",
			body:    `{"embryo_list":[{}]}`,
			wantErr: true,
		},
		{
			name:    "pair missing value",
			body:    `{"embryo_list":[{"properties":[{"name":"url"}]}]}`,
			wantErr: true,
		},
		{
			name:    "non-string value",
			body:    `{"embryo_list":[{"properties":[{"name":"url","value":42}]}]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmbryoList([]byte(tt.body))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			assert.True(t, errors.As(err, &ve), "expected *ValidationError, got %T", err)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestSchemaLoadError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &SchemaLoadError{Path: "x.json", Message: "bad", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load schema x.json: bad: boom", err.Error())
}
