package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/codalotl/docview/internal/highlight"
	"github.com/codalotl/docview/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, d Dialect, text string, opts Options) value.Value {
	t.Helper()
	v, err := Parse(d, text, opts)
	require.NoError(t, err)
	return v
}

func parseError(t *testing.T, d Dialect, text string, opts Options) *Error {
	t.Helper()
	_, err := Parse(d, text, opts)
	require.Error(t, err)
	var pe *Error
	require.True(t, errors.As(err, &pe), "got %T: %v", err, err)
	return pe
}

func TestParse_Empty(t *testing.T) {
	for _, d := range []Dialect{JSON, TOML, YAML} {
		_, err := Parse(d, "  \n\t", Options{})
		assert.ErrorIs(t, err, ErrEmpty, d.String())
	}
}

func TestParseJSON_KeepsKeyOrderAndNumbers(t *testing.T) {
	v := mustParse(t, JSON, `{"z": 1, "a": [1.50, 2e3, -0, 12345678901234567890], "m": {"k": null, "t": true}}`, Options{})
	assert.Equal(t, []string{"z", "a", "m"}, v.Keys())
	assert.Equal(t, `{"z":1,"a":[1.5,2000,0,12345678901234567000],"m":{"k":null,"t":true}}`, v.String())
}

func TestParseJSON_DuplicateKeyLastWins(t *testing.T) {
	v := mustParse(t, JSON, `{"a": 1, "b": 2, "a": 3}`, Options{})
	assert.Equal(t, `{"a":3,"b":2}`, v.String())
}

func TestParseJSON_Lenient(t *testing.T) {
	text := `{
  // comment
  "a": True, /* block */
  "b": [False, None,],
  "s": "True None",
}`
	v := mustParse(t, JSON, text, Options{Lenient: true})
	assert.Equal(t, `{"a":true,"b":[false,null],"s":"True None"}`, v.String())

	_, err := Parse(JSON, text, Options{})
	assert.Error(t, err)
}

func TestParseJSON_ErrorLocation(t *testing.T) {
	pe := parseError(t, JSON, "{\n  \"a\": tru\n}", Options{})
	require.NotNil(t, pe.Location)
	// The scanner fails on the newline after "tru".
	assert.Equal(t, highlight.Location{Line: 2, Column: 11}, *pe.Location)
	assert.Contains(t, pe.Message, "at 2:11")

	pe = parseError(t, JSON, `{"a": 1`, Options{})
	require.NotNil(t, pe.Location)
	assert.Equal(t, highlight.Location{Line: 1, Column: 8}, *pe.Location, "end of input")

	pe = parseError(t, JSON, `[1] x`, Options{})
	require.NotNil(t, pe.Location)
	assert.Equal(t, highlight.Location{Line: 1, Column: 5}, *pe.Location)

	// Lenient parsing reports positions in the original text.
	pe = parseError(t, JSON, "// c\n{\"a\": @}", Options{Lenient: true})
	require.NotNil(t, pe.Location)
	assert.Equal(t, 2, pe.Location.Line)
}

func TestParseJSON_JSON5(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "unquoted keys", text: `{a: 1, $b_2: {c: true}}`, want: `{"a":1,"$b_2":{"c":true}}`},
		{name: "reserved word keys", text: `{null: 1, NaN: 2}`, want: `{"null":1,"NaN":2}`},
		{name: "single quotes", text: `{'a': 'say "hi"', "b": 'it\'s'}`, want: `{"a":"say \"hi\"","b":"it's"}`},
		{name: "escapes", text: `["\x41\v\u00e9", "a\
b", "\ud83d\ude00"]`, want: "[\"A\\u000bé\",\"ab\",\"😀\"]"},
		{name: "hex", text: `[0x10, -0XfF, +0x0]`, want: `[16,-255,0]`},
		{name: "decimal points", text: `[.5, 5., -.25e1, +1]`, want: `[0.5,5,-2.5,1]`},
		{name: "non-finite", text: `[Infinity, -Infinity, +Infinity, NaN]`, want: `[null,null,null,null]`},
		{name: "extra whitespace", text: "{\va:\f1\u00a0}", want: `{"a":1}`},
		{name: "comments between key and colon", text: "{a /* c */ : 1}", want: `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustParse(t, JSON, tt.text, Options{Lenient: true})
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestParseJSON_NonFiniteNumbers(t *testing.T) {
	v := mustParse(t, JSON, `{"a": [Infinity, -Infinity, NaN, null]}`, Options{Lenient: true})
	a := mustGet(t, v, "a")
	require.Equal(t, 4, a.Len())
	assert.Equal(t, "Infinity", a.Index(0).NumberText())
	assert.Equal(t, "-Infinity", a.Index(1).NumberText())
	assert.Equal(t, "NaN", a.Index(2).NumberText())
	assert.Equal(t, value.Null, a.Index(3).Kind())
}

func TestParseJSON_TrailingLineComment(t *testing.T) {
	v := mustParse(t, JSON, `{"a": False, "b": None} // c`, Options{Lenient: true})
	assert.Equal(t, `{"a":false,"b":null}`, v.String())

	v = mustParse(t, JSON, "[1, 2,] /* c */", Options{Lenient: true})
	assert.Equal(t, `[1,2]`, v.String())
}

func TestParseJSON_LenientErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want highlight.Location
		msg  string
	}{
		{name: "truncated literal", text: "{\"a\": tru\n}", want: highlight.Location{Line: 1, Column: 10}, msg: `invalid character '\n' at 1:10`},
		{name: "unknown word", text: `{"a": x}`, want: highlight.Location{Line: 1, Column: 7}, msg: `invalid character 'x' at 1:7`},
		{name: "unterminated string", text: "{'a", want: highlight.Location{Line: 1, Column: 4}, msg: "unexpected end of input at 1:4"},
		{name: "bad hex", text: "[0xg]", want: highlight.Location{Line: 1, Column: 4}, msg: `invalid character 'g' at 1:4`},
		{name: "bad escape", text: `["\1"]`, want: highlight.Location{Line: 1, Column: 4}, msg: `invalid character '1' at 1:4`},
		{name: "after rewritten key", text: "{abc: 1 2}", want: highlight.Location{Line: 1, Column: 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pe := parseError(t, JSON, tt.text, Options{Lenient: true})
			require.NotNil(t, pe.Location, pe.Message)
			assert.Equal(t, tt.want, *pe.Location, pe.Message)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, pe.Message)
			}
		})
	}
}

func TestParseJSON_LenientErrorStatesPositionOnce(t *testing.T) {
	pe := parseError(t, JSON, "[1,\n  @]", Options{Lenient: true})
	require.NotNil(t, pe.Location)
	assert.Equal(t, highlight.Location{Line: 2, Column: 3}, *pe.Location)
	assert.NotContains(t, pe.Message, "hujson")
	assert.NotContains(t, pe.Message, "line 2")
	assert.Equal(t, 1, strings.Count(pe.Message, "2:3"), pe.Message)
}

func TestParseTOML_KeepsDocumentOrder(t *testing.T) {
	text := `
title = "x"
zeta = 1
alpha = { b = 2, a = 1 }
dotted.z = true
dotted.y = false

[server]
port = 8080
host = "h"

[[items]]
name = "one"
id = 1

[[items]]
name = "two"

[items.extra]
q = 1
p = 2
`
	v := mustParse(t, TOML, text, Options{})
	assert.Equal(t, []string{"title", "zeta", "alpha", "dotted", "server", "items"}, v.Keys())

	alpha, _ := v.Get("alpha")
	assert.Equal(t, []string{"b", "a"}, alpha.Keys())
	server, _ := v.Get("server")
	assert.Equal(t, []string{"port", "host"}, server.Keys())

	items, _ := v.Get("items")
	require.Equal(t, 2, items.Len())
	assert.Equal(t, []string{"name", "id"}, items.Index(0).Keys())
	extra, ok := items.Index(1).Get("extra")
	require.True(t, ok)
	assert.Equal(t, []string{"q", "p"}, extra.Keys())
}

func TestParseTOML_Values(t *testing.T) {
	v := mustParse(t, TOML, `
f = 1.0
inf = inf
d = 1979-05-27
dt = 1979-05-27T07:32:00Z
arr = [1, "two"]
`, Options{})
	assert.Equal(t, `{"f":1,"inf":null,"d":"1979-05-27","dt":"1979-05-27T07:32:00Z","arr":[1,"two"]}`, v.String())
}

func TestParseTOML_ErrorLocation(t *testing.T) {
	pe := parseError(t, TOML, "a = 1\nb = \n", Options{})
	require.NotNil(t, pe.Location)
	assert.Equal(t, 2, pe.Location.Line)
	assert.Equal(t, TOML, pe.Dialect)
}

func TestParseYAML(t *testing.T) {
	text := `
z: 1
a:
  - x
  - 2.5
  - true
  - ~
base: &base
  k: v
  o: 1
derived:
  o: 2
  <<: *base
`
	v := mustParse(t, YAML, text, Options{})
	assert.Equal(t, []string{"z", "a", "base", "derived"}, v.Keys())
	assert.Equal(t, `["x",2.5,true,null]`, mustGet(t, v, "a").String())
	assert.Equal(t, `{"o":2,"k":"v"}`, mustGet(t, v, "derived").String())
}

func TestParseYAML_ErrorLocation(t *testing.T) {
	pe := parseError(t, YAML, "a: 1\nb: [1, 2\nc: 3\n", Options{})
	require.NotNil(t, pe.Location)
	assert.Equal(t, 1, pe.Location.Column)
	assert.Positive(t, pe.Location.Line)
}

func mustGet(t *testing.T, v value.Value, key string) value.Value {
	t.Helper()
	got, ok := v.Get(key)
	require.True(t, ok, key)
	return got
}

func TestLocate(t *testing.T) {
	loc, ok := Locate("JSON5: invalid character 'x' at 3:14")
	require.True(t, ok)
	assert.Equal(t, highlight.Location{Line: 3, Column: 14}, loc)

	loc, ok = Locate("oops AT  2:1 and at 9:9")
	require.True(t, ok)
	assert.Equal(t, highlight.Location{Line: 2, Column: 1}, loc)

	_, ok = Locate("unexpected end of input")
	assert.False(t, ok)
	_, ok = Locate("line 3 column 4")
	assert.False(t, ok)
}

func TestExpandStrings(t *testing.T) {
	text := `{"payload": "{\"inner\": \"[1, 2]\"}", "list": ["[True]", "[not json", "{x}"], "plain": "{}x"}`
	v := mustParse(t, JSON, text, Options{Lenient: true, ExpandStrings: true})
	assert.Equal(t, `{"payload":{"inner":[1,2]},"list":[[true],"[not json","{x}"],"plain":"{}x"}`, v.String())

	// Without lenient parsing, Python literals inside strings stay strings.
	v = ExpandStrings(value.StringValue("[True]"), Options{})
	assert.Equal(t, `"[True]"`, v.String())
}

func TestQuery(t *testing.T) {
	v := mustParse(t, JSON, `{"servers": [{"name": "a", "port": 1}, {"name": "b", "port": 2}]}`, Options{})

	got, err := Query(v, "servers.1.name")
	require.NoError(t, err)
	assert.Equal(t, `"b"`, got.String())

	got, err = Query(v, "servers.#.port")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, got.String())

	got, err = Query(v, "  ")
	require.NoError(t, err)
	assert.True(t, value.Equal(v, got))

	_, err = Query(v, "servers.9")
	assert.ErrorIs(t, err, ErrUnknownPath)
}

func TestDialects(t *testing.T) {
	assert.Equal(t, TOML, DialectFromPath("conf/Cargo.TOML"))
	assert.Equal(t, YAML, DialectFromPath("a.yml"))
	assert.Equal(t, JSON, DialectFromPath("a.json5"))
	assert.Equal(t, JSON, DialectFromPath("noext"))

	d, err := ParseDialect("YAML")
	require.NoError(t, err)
	assert.Equal(t, YAML, d)
	_, err = ParseDialect("xml")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}
