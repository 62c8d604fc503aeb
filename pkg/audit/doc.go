// Package audit provides an audit trail of identity changes.
//
// Every operation that writes to a config scope (adding or removing an
// identity, activating one, clearing the active one) can be recorded as an
// RFC5424 syslog line, so changes made to shared git config files can be
// traced afterwards.
//
// # Usage
//
//	logger, closer, err := audit.Open("/home/alice/.local/state/git-identity/audit.log")
//	defer closer.Close()
//
//	logger.Log(audit.IdentityEvent{
//	    Operation:  audit.OperationAdd,
//	    Scope:      "global",
//	    IdentityID: "work",
//	    Success:    true,
//	})
//
// A nil *Logger discards events, so callers do not need to check whether
// auditing is enabled.
package audit
