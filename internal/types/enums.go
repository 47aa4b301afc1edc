package types

import (
	"regexp"
	"strings"
	"unicode"
)

// Board visibility values
const (
	VisibilityPrivate   = "private"
	VisibilityWorkspace = "workspace"
	VisibilityPublic    = "public"
)

// Board background types
const (
	BackgroundColor    = "color"
	BackgroundGradient = "gradient"
	BackgroundImage    = "image"
)

// Default background applied to boards created without one
const (
	DefaultBackgroundType  = BackgroundGradient
	DefaultBackgroundValue = "linear-gradient(135deg, #026AA7 0%, #4A90C2 50%, #5AAC44 100%)"
)

// Board member roles
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleMember   = "member"
	RoleObserver = "observer"
)

// Workspace types
const (
	WorkspacePersonal   = "personal"
	WorkspaceTeam       = "team"
	WorkspaceEnterprise = "enterprise"
)

// Activity action types
const (
	ActionCreateBoard       = "create_board"
	ActionAddBoardMember    = "add_board_member"
	ActionRemoveBoardMember = "remove_board_member"
	ActionCreateColumn      = "create_column"
	ActionUpdateColumn      = "update_column"
	ActionDeleteColumn      = "delete_column"
	ActionCreateCard        = "create_card"
	ActionUpdateCard        = "update_card"
	ActionMoveCard          = "move_card"
	ActionCompleteCard      = "complete_card"
	ActionArchiveCard       = "archive_card"
	ActionDeleteCard        = "delete_card"
	ActionAddComment        = "add_comment"
)

// Activity entity types
const (
	EntityBoard   = "board"
	EntityMember  = "member"
	EntityColumn  = "column"
	EntityCard    = "card"
	EntityComment = "comment"
)

// Field limits
const (
	MaxBoardTitle    = 255
	MaxColumnTitle   = 255
	MaxCardTitle     = 500
	MaxLabelName     = 100
	MaxWorkspaceName = 255
	MaxComment       = 5000
	MinPassword      = 6
)

var ValidVisibilities = []string{
	VisibilityPrivate, VisibilityWorkspace, VisibilityPublic,
}

var ValidBackgroundTypes = []string{
	BackgroundColor, BackgroundGradient, BackgroundImage,
}

var ValidBoardRoles = []string{
	RoleOwner, RoleAdmin, RoleMember, RoleObserver,
}

var ValidWorkspaceTypes = []string{
	WorkspacePersonal, WorkspaceTeam, WorkspaceEnterprise,
}

// Workspaces only know private and public.
var ValidWorkspaceVisibilities = []string{
	VisibilityPrivate, VisibilityPublic,
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func IsValidVisibility(v string) bool {
	return contains(ValidVisibilities, v)
}

func IsValidBackgroundType(t string) bool {
	return contains(ValidBackgroundTypes, t)
}

func IsValidBoardRole(role string) bool {
	return contains(ValidBoardRoles, role)
}

func IsValidWorkspaceType(t string) bool {
	return contains(ValidWorkspaceTypes, t)
}

func IsValidWorkspaceVisibility(v string) bool {
	return contains(ValidWorkspaceVisibilities, v)
}

// IsValidHexColor reports whether color is a #RRGGBB code, in any case.
func IsValidHexColor(color string) bool {
	return hexColorPattern.MatchString(color)
}

// CanEdit reports whether a board role may change columns, cards, labels and checklists.
func CanEdit(role string) bool {
	return role == RoleOwner || role == RoleAdmin || role == RoleMember
}

// CanManageMembers reports whether a board role may add, change or remove members.
func CanManageMembers(role string) bool {
	return role == RoleOwner || role == RoleAdmin
}

// Initials builds the two-letter avatar text from a full name:
// the first letters of the first two whitespace separated words, upper-cased.
func Initials(fullName string) string {
	parts := strings.FieldsFunc(fullName, unicode.IsSpace)
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range parts {
		if i == 2 {
			break
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
	}
	return b.String()
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
