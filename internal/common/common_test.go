package common

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	cases := []struct {
		token string
		want  Field
	}{
		{"u8", Field{Kind: KindU8, Endian: Big}},
		{"u32le", Field{Kind: KindU32, Endian: Little}},
		{"I64BE", Field{Kind: KindI64, Endian: Big}},
		{"f32ne", Field{Kind: KindF32, Endian: Native}},
		{"u128", Field{Kind: KindU128, Endian: Big}},
		{"cstr", Field{Kind: KindCStr, Endian: Big}},
		{"str:5", Field{Kind: KindStr, Endian: Big, Count: 5}},
		{" skip:0 ", Field{Kind: KindSkip, Endian: Big}},
	}
	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseField(tc.token, Big)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseFieldErrors(t *testing.T) {
	for _, token := range []string{"", "u24", "u8le", "cstrle", "u16xe"} {
		_, err := ParseField(token, Little)
		require.Truef(t, errors.Is(err, ErrUnknownKind), "token %q: %v", token, err)
	}
	for _, token := range []string{"str", "bytes:x", "skip:-1", "u16:2"} {
		_, err := ParseField(token, Little)
		require.Truef(t, errors.Is(err, ErrBadCount), "token %q: %v", token, err)
	}
}

func TestFixedSize(t *testing.T) {
	require.Equal(t, 1, FixedSize(KindI8))
	require.Equal(t, 4, FixedSize(KindF32))
	require.Equal(t, 16, FixedSize(KindI128))
	require.Equal(t, -1, FixedSize(KindCStr))
	require.False(t, IsFixedKind(KindUvarint))
	require.True(t, IsFixedKind(KindU64))
}

func TestParseEndian(t *testing.T) {
	e, err := ParseEndian("BIG")
	require.NoError(t, err)
	require.Equal(t, Big, e)
	e, err = ParseEndian("")
	require.NoError(t, err)
	require.Equal(t, Little, e)
	_, err = ParseEndian("middle")
	require.Error(t, err)
}
