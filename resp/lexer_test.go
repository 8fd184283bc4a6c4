package resp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerExpectAndField(t *testing.T) {
	ctx := NewContext("lexer_test")
	lx := NewLexer(strings.NewReader("B050F03     Station:     ANMO\nB050F16     Network:     IU\n"), ctx)

	l, err := lx.Expect(50, 3)
	require.NoError(t, err)
	v, err := lx.Field(l, 0)
	require.NoError(t, err)
	assert.Equal(t, "ANMO", v)

	net, err := lx.ExpectField(50, 16)
	require.NoError(t, err)
	assert.Equal(t, "IU", net)
}

func TestLexerPushbackAndPeek(t *testing.T) {
	ctx := NewContext("lexer_test")
	lx := NewLexer(strings.NewReader("B052F03     Location:    00\nB050F03     Station:     ANMO\n"), ctx)

	prefix, ok, err := lx.PeekPrefix()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 52, prefix.BlocketteNo)

	l, err := lx.Expect(52, 3)
	require.NoError(t, err)
	assert.Equal(t, "00", l.Fields[0])

	prefix, ok, err = lx.PeekPrefix()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 50, prefix.BlocketteNo)
}

func TestLexerSkipsBlankAndCommentLines(t *testing.T) {
	ctx := NewContext("lexer_test")
	lx := NewLexer(strings.NewReader("\n# a comment\n\nB050F03     Station:     ANMO\n"), ctx)

	l, err := lx.Expect(50, 3)
	require.NoError(t, err)
	assert.Equal(t, "ANMO", l.Fields[0])
}

func TestLexerUnrecognizedPrefix(t *testing.T) {
	ctx := NewContext("lexer_test")
	lx := NewLexer(strings.NewReader("this is not a data line\n"), ctx)

	_, err := lx.Expect(50, 3)
	require.Error(t, err)
	assert.True(t, AsKind(err, KindUndefinedPrefix))
}

func TestLexerMismatchedExpectPushesBack(t *testing.T) {
	ctx := NewContext("lexer_test")
	lx := NewLexer(strings.NewReader("B050F16     Network:     IU\n"), ctx)

	_, err := lx.Expect(50, 3)
	require.Error(t, err)

	l, err := lx.Expect(50, 16)
	require.NoError(t, err)
	assert.Equal(t, "IU", l.Fields[0])
}
