package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRole_Valid(t *testing.T) {
	require.True(t, RoleProfessional.Valid())
	require.True(t, RoleEmployer.Valid())
	require.True(t, RoleInstitution.Valid())
	require.False(t, Role("admin").Valid())
	require.False(t, Role("").Valid())
}

func TestUserProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		u    UserProfile
		want string
	}{
		{"name wins", UserProfile{Name: "Amina", Email: "a@b.com"}, "Amina"},
		{"email local part", UserProfile{Email: "amina@b.com"}, "amina"},
		{"degenerate email", UserProfile{Email: "@b.com"}, "@b.com"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.u.DisplayName())
		})
	}
}

func TestCredential_IsSample(t *testing.T) {
	require.True(t, Credential{ID: "sample-cred-1"}.IsSample())
	require.False(t, Credential{ID: "b7c9d1"}.IsSample())
	require.True(t, IsSampleID("sample-issued-2"))
	require.False(t, IsSampleID("samples"))
}

func TestFailedResult_DefaultReason(t *testing.T) {
	r := FailedResult("")
	require.False(t, r.Verified)
	require.Equal(t, "Credential not found or invalid", r.Reason)

	r = FailedResult("credential revoked")
	require.Equal(t, "credential revoked", r.Reason)
}
