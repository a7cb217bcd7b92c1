package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResultObject(t *testing.T) {
	r := ParseResult([]byte(`{"valid": true, "message": "ok"}`))
	assert.False(t, r.IsError())
	assert.True(t, r.Bool("valid"))
	assert.Equal(t, "ok", r.Message())
}

func TestParseResultArrayTakesFirstElement(t *testing.T) {
	r := ParseResult([]byte(`[{"available": true}, {"available": false}]`))
	assert.True(t, r.Bool("available"))
}

func TestParseResultEmptyArrayIsError(t *testing.T) {
	r := ParseResult([]byte(`[]`))
	assert.True(t, r.IsError())
}

func TestParseResultEncodedStringObject(t *testing.T) {
	r := ParseResult([]byte(`"{\"capacity_ok\": true}"`))
	assert.False(t, r.IsError())
	assert.True(t, r.Bool("capacity_ok"))
}

func TestParseResultPlainStringIsError(t *testing.T) {
	r := ParseResult([]byte(`"something went wrong"`))
	assert.True(t, r.IsError())
	assert.Equal(t, "something went wrong", r.Message())
}

func TestParseResultGarbageIsError(t *testing.T) {
	r := ParseResult([]byte(`not json at all`))
	assert.True(t, r.IsError())
	assert.Equal(t, "not json at all", r.Message())
}

func TestResultAccessors(t *testing.T) {
	r := Result{
		"flag":    true,
		"wrong":   "true",
		"amount":  12.5,
		"count":   3,
		"roles":   []any{"manager", "director"},
		"strs":    []string{"a"},
		"message": "",
	}

	assert.True(t, r.Bool("flag"))
	assert.False(t, r.Bool("wrong"))
	assert.False(t, r.Bool("missing"))

	assert.Equal(t, 12.5, r.Float("amount"))
	assert.Equal(t, 3.0, r.Float("count"))
	assert.Equal(t, 0.0, r.Float("missing"))

	assert.Equal(t, []string{"manager", "director"}, r.Strings("roles"))
	assert.Equal(t, []string{"a"}, r.Strings("strs"))
	assert.Nil(t, r.Strings("missing"))

	assert.Equal(t, "unknown error", r.Message())
}
