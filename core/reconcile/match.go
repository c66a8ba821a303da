package reconcile

import "strings"

// LikeEscape is the escape character for LIKE patterns built by
// LikeContains. Queries must carry an explicit ESCAPE '!' clause:
// sqlite has no default escape character, and a backslash inside the
// clause would itself need escaping under MySQL's string literals.
const LikeEscape = "!"

// LikeContains builds a substring LIKE pattern for the given literal,
// escaping LIKE metacharacters with LikeEscape.
func LikeContains(literal string) string {
	escaped := strings.NewReplacer(
		`!`, `!!`,
		`%`, `!%`,
		`_`, `!_`,
	).Replace(literal)
	return "%" + escaped + "%"
}
