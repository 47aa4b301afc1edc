package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		want  bool
	}{
		{"#EB5A46", true},
		{"#eb5a46", true},
		{"#Eb5A46", true},
		{"#EB5A4", false},
		{"EB5A46", false},
		{"#EB5A46F", false},
		{"#GGGGGG", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidHexColor(tt.color))
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
	}{
		{"two words", "Ada Lovelace", "AL"},
		{"single word", "ada", "A"},
		{"three words", "john ronald tolkien", "JR"},
		{"extra whitespace", "  grace \t hopper  ", "GH"},
		{"empty", "   ", ""},
		{"non ascii", "émile zola", "ÉZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.fullName))
		})
	}
}

func TestRolePermissions(t *testing.T) {
	assert.True(t, CanEdit(RoleOwner))
	assert.True(t, CanEdit(RoleMember))
	assert.False(t, CanEdit(RoleObserver))
	assert.False(t, CanEdit("stranger"))

	assert.True(t, CanManageMembers(RoleAdmin))
	assert.False(t, CanManageMembers(RoleMember))
}

func TestEnumValidators(t *testing.T) {
	assert.True(t, IsValidVisibility(VisibilityWorkspace))
	assert.False(t, IsValidVisibility("team"))
	assert.True(t, IsValidBackgroundType(BackgroundImage))
	assert.False(t, IsValidBackgroundType("pattern"))
	assert.True(t, IsValidBoardRole(RoleObserver))
	assert.False(t, IsValidBoardRole("viewer"))
	assert.True(t, IsValidWorkspaceVisibility(VisibilityPublic))
	assert.False(t, IsValidWorkspaceVisibility(VisibilityWorkspace))
}
