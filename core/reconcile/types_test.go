package reconcile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeKey(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		parts := []string{"", "a:b", "12", "x|y"}
		key := NewCompositeKey(parts...)
		assert.Equal(t, parts, key.Parts())
		assert.Equal(t, `|a:b|12|x\|y`, key.String())
	})

	t.Run("DisplayEscapesSeparator", func(t *testing.T) {
		assert.Equal(t, "a|b", NewCompositeKey("a|b").String())
		assert.Equal(t, `a\|b|c`, NewCompositeKey("a|b", "c").String())
		assert.Equal(t, `a|b\|c`, NewCompositeKey("a", "b|c").String())
		assert.Equal(t, `a\\|b`, NewCompositeKey(`a\`, "b").String())
		assert.NotEqual(t, NewCompositeKey("a|b", "c").String(), NewCompositeKey("a", "b|c").String())
	})

	t.Run("NoCollisions", func(t *testing.T) {
		assert.NotEqual(t, NewCompositeKey("a|b"), NewCompositeKey("a", "b"))
		assert.NotEqual(t, NewCompositeKey("ab", ""), NewCompositeKey("a", "b"))
		assert.NotEqual(t, NewCompositeKey("1:a"), NewCompositeKey("1", "a"))
	})

	t.Run("OutOfRangePositions", func(t *testing.T) {
		key := KeyOf(Record{"1", "2"}, KeySpec{2, 5})
		assert.Equal(t, []string{"2", ""}, key.Parts())
	})

	t.Run("JSON", func(t *testing.T) {
		data, err := json.Marshal(map[string]any{"key": NewCompositeKey("1", "EU"), "mode": Numeric})
		require.NoError(t, err)
		assert.JSONEq(t, `{"key":"1|EU","mode":"numeric"}`, string(data))
	})
}

func TestIngestedSet_LastWriteWins(t *testing.T) {
	set := NewIngestedSet()
	key := NewCompositeKey("1")

	set.Add(key, Record{"1", "A"})
	set.Add(NewCompositeKey("2"), Record{"2", "B", "extra"})
	set.Add(key, Record{"1", "C"})

	e, ok := set.Get(key)
	require.True(t, ok)
	assert.Equal(t, Record{"1", "C"}, e.Record)
	assert.Equal(t, 2, e.Count)
	assert.Equal(t, 3, set.Rows)
	assert.Equal(t, 3, set.MaxWidth)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []CompositeKey{key, NewCompositeKey("2")}, set.Keys())
}

func TestResolveKeys(t *testing.T) {
	schema := newSchema([]string{"ID", "Name", "name", "Amount"})

	t.Run("CaseInsensitive", func(t *testing.T) {
		keys, err := ResolveKeys("amount, id", true, schema)
		require.NoError(t, err)
		assert.Equal(t, KeySpec{4, 1}, keys)
	})

	t.Run("RepeatedHeaderUsesFirst", func(t *testing.T) {
		keys, err := ResolveKeys("NAME", true, schema)
		require.NoError(t, err)
		assert.Equal(t, KeySpec{2}, keys)
	})

	t.Run("Headerless", func(t *testing.T) {
		keys, err := ResolveKeys("3,1", false, SchemaInfo{})
		require.NoError(t, err)
		assert.Equal(t, KeySpec{3, 1}, keys)
		assert.Equal(t, "3,1", keys.String())
	})

	t.Run("EmptyTokens", func(t *testing.T) {
		for _, spec := range []string{"id,", "id,,amount", ",id", " , "} {
			_, err := ResolveKeys(spec, true, schema)
			assert.ErrorIs(t, err, ErrEmptyKeySpec, spec)
			assert.Equal(t, ExitKeySpec, ExitCode(err), spec)
		}
	})

	t.Run("HeaderlessRejectsNames", func(t *testing.T) {
		_, err := ResolveKeys("1,id", false, SchemaInfo{})
		assert.ErrorIs(t, err, ErrInvalidKeyIndex)
		assert.Equal(t, ExitKeySpec, ExitCode(err))
	})
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{",", ',', false},
		{";", ';', false},
		{"|", '|', false},
		{`\t`, '\t', false},
		{"tab", '\t', false},
		{"", 0, true},
		{",,", 0, true},
		{`"`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDelimiter(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, ExitUsage, ExitCode(err))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHeaderFlag(t *testing.T) {
	v, err := ParseHeaderFlag(1)
	assert.NoError(t, err)
	assert.True(t, v)

	v, err = ParseHeaderFlag(0)
	assert.NoError(t, err)
	assert.False(t, v)

	_, err = ParseHeaderFlag(2)
	assert.Equal(t, ExitUsage, ExitCode(err))
}

func TestDiffSchemas(t *testing.T) {
	t.Run("CountAndNames", func(t *testing.T) {
		notes := DiffSchemas(newSchema([]string{"id", "amt"}), newSchema([]string{"id", "Amt", "note"}), true)
		assert.Equal(t, []string{
			"column count differs: source=2 target=3",
			"column 2 name differs: source=amt target=Amt",
			"column 3 name differs: source=<missing> target=note",
		}, notes)
	})

	t.Run("HeadersMatch", func(t *testing.T) {
		notes := DiffSchemas(newSchema([]string{"id"}), newSchema([]string{"id"}), true)
		assert.Equal(t, []string{"headers match"}, notes)
	})

	t.Run("HeaderlessWidthsMatch", func(t *testing.T) {
		notes := DiffSchemas(SchemaInfo{Columns: 4}, SchemaInfo{Columns: 4}, false)
		assert.Equal(t, []string{"row widths match: 4"}, notes)
	})
}
