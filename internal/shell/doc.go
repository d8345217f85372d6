// Package shell is a line-oriented front end over a session.Session.
//
// It only collects input, calls the session and prints results; all rules
// live in the core packages. Commands:
//
//	login [user|token]  activate a user (a JWT is verified first)
//	logout              forget the active user
//	add                 log a food entry
//	rm <id>             remove a food entry
//	recent              entries of the recent window
//	summary             totals, meal breakdown and progress
//	issue               report a health issue
//	unissue <id>        remove an issue and its recommendations
//	issues              list issues with their recommendations
//	plan [regen]        show the saved fitness plan, regen replaces it
//	recognize <path|url> prefill an entry from a food photo
//	help, exit | quit
package shell
