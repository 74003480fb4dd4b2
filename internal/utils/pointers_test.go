package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akriva/portal/internal/utils"
)

func TestPtr(t *testing.T) {
	name := utils.Ptr("Acme")
	require.NotNil(t, name)
	require.Equal(t, "Acme", *name)

	year := utils.Ptr(2024)
	require.Equal(t, 2024, *year)
}

func TestValue(t *testing.T) {
	require.Equal(t, "Acme", utils.Value(utils.Ptr("Acme")))
	require.Equal(t, 2024, utils.Value(utils.Ptr(2024)))

	var nilString *string
	require.Equal(t, "", utils.Value(nilString))

	var nilInt *int
	require.Equal(t, 0, utils.Value(nilInt))
}
