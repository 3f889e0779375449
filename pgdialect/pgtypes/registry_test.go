package pgtypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francipvb/pgdialect-go/pgdialect/pgtypes"
)

func Test_Lookup_FallsBackToIdentityForUnregisteredKinds(t *testing.T) {
	m := pgtypes.NewMap()

	codec := m.Lookup(pgtypes.KindInterval)

	encoded, err := codec.Encode("1 day")
	require.NoError(t, err)
	assert.Equal(t, "1 day", encoded)

	decoded, err := codec.Decode("1 day")
	require.NoError(t, err)
	assert.Equal(t, "1 day", decoded)
}

func Test_Register_LastRegistrationWins(t *testing.T) {
	m := pgtypes.NewMap()

	m.Register(pgtypes.KindBoolean, pgtypes.Codec{
		Encode: func(any) (any, error) { return "first", nil },
	})
	m.Register(pgtypes.KindBoolean, pgtypes.Codec{
		Encode: func(any) (any, error) { return "second", nil },
	})

	encoded, err := m.Lookup(pgtypes.KindBoolean).Encode(true)

	require.NoError(t, err)
	assert.Equal(t, "second", encoded)
}

func Test_Register_NilSidesDefaultToIdentity(t *testing.T) {
	m := pgtypes.NewMap()

	m.Register(pgtypes.KindDate, pgtypes.Codec{
		Encode: func(any) (any, error) { return "encoded", nil },
	})

	decoded, err := m.Lookup(pgtypes.KindDate).Decode("2026-08-30")

	require.NoError(t, err)
	assert.Equal(t, "2026-08-30", decoded)
}

func Test_RegisterLoader_LastRegistrationWins(t *testing.T) {
	m := pgtypes.NewMap()

	m.RegisterLoader("inet", func(any) (any, error) { return "first", nil })
	m.RegisterLoader("inet", pgtypes.TextLoader)

	loader, ok := m.Loader("inet")
	require.True(t, ok)

	decoded, err := loader([]byte("10.0.0.1/32"))
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1/32", decoded)
}

func Test_Loader_MissingTypeName(t *testing.T) {
	m := pgtypes.NewMap()

	_, ok := m.Loader("macaddr")

	assert.False(t, ok)
}

func Test_TextLoader_DecodesBytesAndPassesStrings(t *testing.T) {
	decoded, err := pgtypes.TextLoader([]byte("192.168.0.0/24"))
	require.NoError(t, err)
	assert.Equal(t, "192.168.0.0/24", decoded)

	decoded, err = pgtypes.TextLoader("fe80::/10")
	require.NoError(t, err)
	assert.Equal(t, "fe80::/10", decoded)

	decoded, err = pgtypes.TextLoader(nil)
	require.NoError(t, err)
	assert.Nil(t, decoded)
}
