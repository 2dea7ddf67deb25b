package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_UnmarshalPlainString(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`"hello @bob"`), &d))
	assert.False(t, d.IsStructured())
	assert.Equal(t, "hello @bob", d.Text())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"hello @bob"`, string(out))
}

func TestDocument_UnmarshalStructured(t *testing.T) {
	raw := `{"type":"doc","content":[{"type":"text","text":"hi"}]}`

	var d Document
	require.NoError(t, json.Unmarshal([]byte(raw), &d))
	assert.True(t, d.IsStructured())

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestDocument_UnmarshalNull(t *testing.T) {
	var d Document
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDocument_UnmarshalInvalid(t *testing.T) {
	var d Document
	err := d.UnmarshalJSON([]byte(`{not json`))
	assert.Error(t, err)
}

func TestDocument_SQLRoundTrip(t *testing.T) {
	cases := []Document{
		PlainText("just text"),
		StructuredDocument(json.RawMessage(`{"blocks":[]}`)),
	}

	for _, in := range cases {
		v, err := in.Value()
		require.NoError(t, err)

		var out Document
		require.NoError(t, out.Scan(v))
		assert.Equal(t, in.IsStructured(), out.IsStructured())
		assert.Equal(t, in.Serialized(), out.Serialized())
	}
}

func TestDocument_ScanBytes(t *testing.T) {
	var d Document
	require.NoError(t, d.Scan([]byte(`["a","b"]`)))
	assert.True(t, d.IsStructured())
}

func TestDocument_SerializedQuotesPlainText(t *testing.T) {
	d := PlainText(`say "hi" to @ann`)
	assert.Contains(t, d.Serialized(), `@ann`)
	assert.Equal(t, `"say \"hi\" to @ann"`, d.Serialized())
}
