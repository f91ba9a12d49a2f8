package domain

import "strings"

// teamRequiredMarker is the substring the hosting service embeds in a
// protocol error when the destination needs a team scope. It is the only
// protocol-reported error that changes control flow.
const teamRequiredMarker = "requires a team ID"

// TeamRequired reports whether any protocol-reported error carries the
// team-scope marker.
func TeamRequired(errs []string) bool {
	for _, e := range errs {
		if strings.Contains(e, teamRequiredMarker) {
			return true
		}
	}
	return false
}

// Team is a team scope available to a credential on a hosting service.
type Team struct {
	// ID is the opaque team identifier sent with scoped requests.
	ID string

	// Name is the human-readable team name.
	Name string
}

// TeamList is the result of fetching the teams available to a credential.
type TeamList struct {
	// Teams are the selectable team scopes.
	Teams []Team

	// ManageURL points at the hosting service's team-management page,
	// where new teams can be created.
	ManageURL string
}

// TeamSelectionKind enumerates the possible outcomes of the interactive
// team resolution prompt. The set is closed: the launcher switches
// exhaustively and treats unknown kinds as an error.
type TeamSelectionKind string

const (
	// TeamSelected means the user picked a team; TeamSelection.TeamID is set.
	TeamSelected TeamSelectionKind = "selected"
	// TeamRefreshRequested means the team list should be fetched again.
	TeamRefreshRequested TeamSelectionKind = "refresh"
	// TeamCreateRequested means the user went off to create a team and the
	// list should be fetched again afterwards.
	TeamCreateRequested TeamSelectionKind = "create"
	// TeamCancelled means the user aborted the publish attempt.
	TeamCancelled TeamSelectionKind = "cancelled"
)

// TeamSelection is the answer produced by a team resolver.
type TeamSelection struct {
	// Kind is the outcome variant.
	Kind TeamSelectionKind

	// TeamID is the chosen team, set only when Kind is TeamSelected.
	TeamID string
}

// SelectTeam returns a selection carrying the chosen team id.
func SelectTeam(id string) TeamSelection {
	return TeamSelection{Kind: TeamSelected, TeamID: id}
}

// RefreshTeams returns a selection asking for the list to be re-fetched.
func RefreshTeams() TeamSelection {
	return TeamSelection{Kind: TeamRefreshRequested}
}

// CreateTeam returns a selection indicating the user is creating a team
// out of band; the list should be re-fetched.
func CreateTeam() TeamSelection {
	return TeamSelection{Kind: TeamCreateRequested}
}

// CancelTeamSelection returns a selection aborting the publish attempt.
func CancelTeamSelection() TeamSelection {
	return TeamSelection{Kind: TeamCancelled}
}
