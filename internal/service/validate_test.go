package service_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkarlsson/webdemo/internal/service"
)

func strPtr(s string) *string { return &s }

func TestValidateEmail(t *testing.T) {
	_, verr := service.ValidateEmail(nil)
	require.NotNil(t, verr)
	require.Equal(t, "E-mail must be set", verr.Message)

	_, verr = service.ValidateEmail(strPtr("bad"))
	require.NotNil(t, verr)
	require.Equal(t, "Invalid e-mail", verr.Message)

	email, verr := service.ValidateEmail(strPtr("a@b.com"))
	require.Nil(t, verr)
	require.Equal(t, "a@b.com", email)
}

func TestValidatePassword(t *testing.T) {
	_, verr := service.ValidatePassword(nil)
	require.NotNil(t, verr)
	require.Equal(t, "Password must be set", verr.Message)

	_, verr = service.ValidatePassword(strPtr("1234"))
	require.NotNil(t, verr)
	require.Equal(t, "Insecure password", verr.Message)

	plain, verr := service.ValidatePassword(strPtr("goodpass"))
	require.Nil(t, verr)
	require.Equal(t, "goodpass", plain)
}
