package audit

import (
	"fmt"
	"strings"
)

// Operation names recorded in identity events
const (
	OperationAdd      = "add"
	OperationRemove   = "remove"
	OperationActivate = "activate"
	OperationClear    = "clear"
)

// IdentityEvent records a change to the identities of a config scope
type IdentityEvent struct {
	Operation    string
	Scope        string
	IdentityID   string
	Keys         []string
	Success      bool
	ErrorMessage string
}

func (e IdentityEvent) MessageID() string {
	return "identity"
}

func (e IdentityEvent) Message() string {
	subject := "active identity"
	if e.IdentityID != "" {
		subject = fmt.Sprintf("identity %s", e.IdentityID)
	}

	if e.Success {
		var verb string
		switch e.Operation {
		case OperationAdd:
			verb = "added"
		case OperationRemove:
			verb = "removed"
		case OperationActivate:
			verb = "activated"
		case OperationClear:
			verb = "cleared"
		default:
			verb = e.Operation + "d"
		}
		return fmt.Sprintf("%s %s in %s scope (%d keys)", subject, verb, e.Scope, len(e.Keys))
	}

	msg := fmt.Sprintf("tried to %s %s in %s scope", e.Operation, subject, e.Scope)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e IdentityEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e IdentityEvent) Facility() int {
	return FacilityUser
}

func (e IdentityEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAction: {
			"operation": e.Operation,
		},
		SDIDScope: {
			"scope": e.Scope,
		},
	}
	if e.IdentityID != "" {
		sd[SDIDSubject] = map[string]string{"identity": e.IdentityID}
	}
	if len(e.Keys) > 0 {
		sd[SDIDScope]["keys"] = strings.Join(e.Keys, ",")
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
