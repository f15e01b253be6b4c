package hub

import "fmt"

// LoginError indicates the hub rejected or mangled a login attempt. This
// usually means bad credentials, but overloaded hubs also fail logins with
// empty responses.
type LoginError struct {
	Reason string
	Status int
}

func (e *LoginError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("login failed: %s (HTTP status %d)", e.Reason, e.Status)
	}
	return fmt.Sprintf("login failed: %s", e.Reason)
}

// AccessDeniedError indicates the hub answered 401 for a request.
type AccessDeniedError struct {
	Path string
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied for %q: check username and password", e.Path)
}

// SetRefusedError indicates the hub refused an SNMP set request.
type SetRefusedError struct {
	OID      string
	Response string
}

func (e *SetRefusedError) Error() string {
	return fmt.Sprintf("hub refused to set OID %s: response was %q", e.OID, e.Response)
}
