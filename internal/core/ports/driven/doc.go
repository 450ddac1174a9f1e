// Package driven lists what the core needs from the outside world.
//
// The Rocket Fuel REST API sits behind QuestionAPI, AnswerAPI, UserAPI and
// TagAPI, and every service that reads or writes posts expects them. So
// does ConfigStore.
//
// The rest may be nil:
//
//   - IdentityProvider: without it a 401 ends the session instead of
//     triggering a fresh sign-in.
//   - SessionStore: without it each run starts signed out.
//   - SearchHistoryStore: without it searches are not remembered.
//
// Nothing here imports an adapter; only domain.
package driven
