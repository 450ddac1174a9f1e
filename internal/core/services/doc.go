// Package services implements the driving ports on top of the driven ones.
//
// SessionService owns the signed-in state; API wrappers call back into it on
// a 401. SearchController debounces keystrokes and drops responses that a
// newer query has overtaken.
package services
