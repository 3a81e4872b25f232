package models

// Signer is a recipient who must sign, initial, date or fill form fields
// on the envelope's documents.
//
// ClientUserID is the correlation key for embedded signing: a
// caller-supplied opaque string identifying a signer tracked locally. It
// is the only field guaranteed stable across the local-remote-local round
// trip; RecipientID and UserID stay empty until the server assigns them.
type Signer struct {
	ClientUserID string
	Email        string
	Name         string

	// Per-recipient email override. All three serialize together under
	// emailNotification once any one is set.
	EmailSubject string
	EmailBody    string
	Language     string

	// RoutingOrder determines the signing sequence. Lower goes first.
	RoutingOrder int

	// Server-assigned identifiers.
	RecipientID string
	UserID      string

	// RoleName is populated when a template role record is synced back
	// from the server.
	RoleName string

	AccessCode string

	Tabs []Tab
}

// Payload returns the wire representation of the signer. Tabs are grouped
// into a mapping from wire collection name to an ordered list of tab
// payloads; a signer with zero tabs produces an empty mapping, not an
// absent key.
func (s *Signer) Payload() map[string]any {
	return map[string]any{
		"clientUserId":      nullable(s.ClientUserID),
		"email":             s.Email,
		"emailNotification": emailNotificationPayload(s.EmailBody, s.EmailSubject, s.Language),
		"name":              s.Name,
		"recipientId":       nullable(s.RecipientID),
		"routingOrder":      s.RoutingOrder,
		"tabs":              s.tabsPayload(),
		"accessCode":        nullable(s.AccessCode),
	}
}

func (s *Signer) tabsPayload() map[string]any {
	tabs := map[string]any{}
	for _, tab := range s.Tabs {
		collection := tab.Kind.WireCollection()
		list, _ := tabs[collection].([]map[string]any)
		tabs[collection] = append(list, tab.Payload())
	}
	return tabs
}

// Role fills a recipient slot predefined in a DocuSign template. RoleName
// must match a role name declared in the template.
type Role struct {
	ClientUserID string
	Email        string
	Name         string
	RoleName     string

	EmailSubject string
	EmailBody    string
	Language     string
}

// Payload returns the wire representation of the template role.
func (r *Role) Payload() map[string]any {
	return map[string]any{
		"clientUserId":      nullable(r.ClientUserID),
		"email":             r.Email,
		"emailNotification": emailNotificationPayload(r.EmailBody, r.EmailSubject, r.Language),
		"name":              r.Name,
		"roleName":          r.RoleName,
	}
}

// asSigner converts a template role into a signer record, carrying over
// the identity and email override fields a sync can preserve.
func (r *Role) asSigner() *Signer {
	return &Signer{
		ClientUserID: r.ClientUserID,
		Email:        r.Email,
		Name:         r.Name,
		RoleName:     r.RoleName,
		EmailSubject: r.EmailSubject,
		EmailBody:    r.EmailBody,
		Language:     r.Language,
	}
}
