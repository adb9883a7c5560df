package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		open byte
		want string
	}{
		{"raw object", `{"a":1}`, '{', `{"a":1}`},
		{"raw array with whitespace", "\n [1,2] \n", '[', `[1,2]`},
		{"fenced json", "Here you go:\n```json\n{\"a\": [\"x\"]}\n```\nthanks", '{', `{"a": ["x"]}`},
		{"fenced without language", "```\n[{\"b\":true}]\n```", '[', `[{"b":true}]`},
		{"object in prose", `The result is {"k": "v {not a brace}"} as requested.`, '{', `{"k": "v {not a brace}"}`},
		{"array preferred", `noise {"x":1} then [1, 2]`, '[', `[1, 2]`},
		{"escaped quote", `answer: {"q": "say \"hi\" }"} end`, '{', `{"q": "say \"hi\" }"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.text, tt.open)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_Failures(t *testing.T) {
	_, err := ExtractJSON("   ", '{')
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = ExtractJSON("no structured data here {broken", '{')
	assert.ErrorIs(t, err, ErrNoJSON)
}

func TestDecode(t *testing.T) {
	schema := Array("colors", String("hex"))

	var colors []string
	require.NoError(t, Decode("```json\n[\"#112233\", \"#aabbcc\"]\n```", schema, &colors))
	assert.Equal(t, []string{"#112233", "#aabbcc"}, colors)

	err := Decode(`[1, 2]`, schema, &colors)
	assert.ErrorContains(t, err, "does not match schema")
}

func TestSchemaValidate(t *testing.T) {
	schema := Object("page",
		Prop("tone", String("tone").OrNull()),
		Prop("kind", Enum("kind", "a", "b")),
		Prop("flag", Boolean("flag")),
		Prop("tags", Array("tags", String("tag")).OrNull()),
	).Require("kind")

	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{"valid", map[string]any{"tone": nil, "kind": "a", "flag": true, "tags": []any{"x"}}, false},
		{"null array allowed", map[string]any{"kind": "b", "tags": nil}, false},
		{"missing required", map[string]any{"flag": false}, true},
		{"enum violation", map[string]any{"kind": "c"}, true},
		{"wrong item type", map[string]any{"kind": "a", "tags": []any{1.0}}, true},
		{"null not nullable", map[string]any{"kind": "a", "flag": nil}, true},
		{"not an object", []any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(context.Context, Request) (string, error) {
	return s.text, s.err
}

func TestGenerateJSON(t *testing.T) {
	req := Request{Prompt: "p", Schema: Object("o", Prop("name", String("n")))}

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, GenerateJSON(context.Background(), stubGenerator{text: `{"name":"acme"}`}, req, &out))
	assert.Equal(t, "acme", out.Name)

	boom := errors.New("boom")
	err := GenerateJSON(context.Background(), stubGenerator{err: boom}, req, &out)
	assert.ErrorIs(t, err, boom)

	err = GenerateJSON(context.Background(), stubGenerator{text: "{}"}, Request{Prompt: "p"}, &out)
	assert.Error(t, err)
}

func TestGenerateItems(t *testing.T) {
	item := Object("entry", Prop("kind", Enum("k", "a", "b"))).Require("kind")
	req := Request{Prompt: "p", Schema: Array("list", item)}

	items, err := GenerateItems(context.Background(), stubGenerator{text: "```json\n[{\"kind\":\"a\"}, {\"kind\":\"z\"}, {}]\n```"}, req)
	require.NoError(t, err)
	require.Len(t, items, 3)

	var out struct {
		Kind string `json:"kind"`
	}
	require.NoError(t, DecodeItem(items[0], item, &out))
	assert.Equal(t, "a", out.Kind)
	assert.Error(t, DecodeItem(items[1], item, &out))
	assert.Error(t, DecodeItem(items[2], item, &out))

	_, err = GenerateItems(context.Background(), stubGenerator{text: `{"kind":"a"}`}, req)
	assert.Error(t, err)

	_, err = GenerateItems(context.Background(), stubGenerator{text: "[]"}, Request{Prompt: "p", Schema: item})
	assert.Error(t, err)
}

func TestToGenaiSchema(t *testing.T) {
	s := Object("root",
		Prop("b", Boolean("flag")),
		Prop("a", Array("list", Enum("e", "x", "y")).OrNull()),
	).Require("b")

	g := toGenaiSchema(s)
	require.NotNil(t, g)
	assert.Equal(t, []string{"b", "a"}, g.PropertyOrdering)
	assert.Equal(t, []string{"b"}, g.Required)
	require.Contains(t, g.Properties, "a")
	require.NotNil(t, g.Properties["a"].Nullable)
	assert.True(t, *g.Properties["a"].Nullable)
	assert.Equal(t, []string{"x", "y"}, g.Properties["a"].Items.Enum)
}
