package session

import "github.com/MahanAzadBeast/n8n-render/internal/api"

// Connection persistence labels shown to the user.
const (
	ConnectionLabelNone    = "none"
	ConnectionLabelSession = "session"
	ConnectionLabelSaved   = "saved"
)

// ConnectionStore holds zero or one n8n credential reference. Only the
// id and persistence tier returned by the backend live here; the api_key
// is transmitted once on save and has no read path. Rotating a credential
// is a fresh save that replaces the reference wholesale.
type ConnectionStore struct {
	ref *api.ConnectionRef
}

// Current returns the saved reference, if any.
func (cs ConnectionStore) Current() (api.ConnectionRef, bool) {
	if cs.ref == nil {
		return api.ConnectionRef{}, false
	}
	return *cs.ref, true
}

// ID returns the saved connection id, or empty.
func (cs ConnectionStore) ID() string {
	if cs.ref == nil {
		return ""
	}
	return cs.ref.ID
}

// Label describes the persistence tier: "saved" when the server stores the
// credential encrypted, "session" when it lives only for this backend
// session, "none" without a connection.
func (cs ConnectionStore) Label() string {
	switch {
	case cs.ref == nil:
		return ConnectionLabelNone
	case cs.ref.Persisted:
		return ConnectionLabelSaved
	default:
		return ConnectionLabelSession
	}
}
