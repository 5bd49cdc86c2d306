package fieldgen

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistryValidateRejectsUnknownMethod(t *testing.T) {
	reg := NewRegistry(1)
	err := reg.Validate("customers", []string{"name", "not_a_real_method"})
	require.Error(t, err)
}

func TestRegistryValidateAcceptsRequiredMethods(t *testing.T) {
	reg := NewRegistry(1)
	required := []string{"name", "email", "phone_number", "street_address", "city", "postcode", "country_code", "iso8601"}
	require.NoError(t, reg.Validate("customers", required))
}

func TestRegistryGenerateIsDeterministicWithSeed(t *testing.T) {
	r1 := NewRegistry(99)
	r2 := NewRegistry(99)

	v1, err := r1.Generate("name")
	require.NoError(t, err)
	v2, err := r2.Generate("name")
	require.NoError(t, err)
	require.Equal(t, v1.AsString(), v2.AsString())
}
