// Package domain has the Rocket Fuel types every other layer shares:
// questions and answers, users and tags, the signed-in Session, and
// SearchState, the snapshot the search controller publishes after each
// keystroke. Query parsing ([label] tags, normalisation) lives here too.
//
// domain imports the standard library and nothing else.
package domain
