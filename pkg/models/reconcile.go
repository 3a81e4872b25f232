package models

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// RecipientRecord is one signer entry as reported by the envelope
// recipients endpoint. RoutingOrder is a string-encoded integer on the
// wire; the weakly-typed decode turns it back into a number.
type RecipientRecord struct {
	RecipientID  string `mapstructure:"recipientId"`
	UserID       string `mapstructure:"userId"`
	ClientUserID string `mapstructure:"clientUserId"`
	Email        string `mapstructure:"email"`
	Name         string `mapstructure:"name"`
	RoleName     string `mapstructure:"roleName"`
	RoutingOrder *int   `mapstructure:"routingOrder"`
}

// routingOrder returns the parsed routing order, defaulting to 1 when the
// server omitted the field.
func (r RecipientRecord) routingOrder() int {
	if r.RoutingOrder == nil {
		return 1
	}
	return *r.RoutingOrder
}

// DecodeRecipientRecords extracts the signer records from a raw envelope
// recipients response.
func DecodeRecipientRecords(data map[string]any) ([]RecipientRecord, error) {
	var payload struct {
		Signers []RecipientRecord `mapstructure:"signers"`
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &payload,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("building recipient decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, fmt.Errorf("decoding recipient records: %w", err)
	}
	return payload.Signers, nil
}

// SyncRecipients merges server-reported signer records into the
// envelope's locally held recipient list and replaces that list with the
// result, sorted ascending by routing order (stable, so server order
// breaks ties).
//
// Matching is by clientUserId string equality against the active local
// collection: signers in document mode, template roles in template mode.
// A matched local entry is consumed from the pool and reused as the base,
// preserving tabs and email overrides the server response does not carry;
// an unmatched server record synthesizes a fresh signer. Server-assigned
// fields (routingOrder, name, userId, recipientId, clientUserId, email,
// roleName) always overwrite the base.
//
// This is a partial update: a local recipient with no matching server
// record silently disappears from the final list. Two local recipients
// sharing a clientUserId is undefined; the first match wins.
func (e *Envelope) SyncRecipients(records []RecipientRecord) {
	take := e.takeLocal()
	synced := make([]*Signer, 0, len(records))
	for _, record := range records {
		var signer *Signer
		if record.ClientUserID != "" {
			signer = take(record.ClientUserID)
		}
		if signer == nil {
			signer = &Signer{}
		}
		signer.RoutingOrder = record.routingOrder()
		signer.Name = record.Name
		signer.UserID = record.UserID
		signer.RecipientID = record.RecipientID
		signer.ClientUserID = record.ClientUserID
		signer.Email = record.Email
		signer.RoleName = record.RoleName
		synced = append(synced, signer)
	}
	sort.SliceStable(synced, func(i, j int) bool {
		return synced[i].RoutingOrder < synced[j].RoutingOrder
	})
	e.Signers = synced
}

// takeLocal returns a function that removes and returns the first entry
// of the active local collection whose clientUserId matches, or nil. The
// same matching logic serves both envelope modes.
func (e *Envelope) takeLocal() func(clientUserID string) *Signer {
	if e.FromTemplate() {
		return func(clientUserID string) *Signer {
			role, ok := takeByClientUserID(&e.Roles, clientUserID,
				func(r *Role) string { return r.ClientUserID })
			if !ok {
				return nil
			}
			return role.asSigner()
		}
	}
	return func(clientUserID string) *Signer {
		signer, ok := takeByClientUserID(&e.Signers, clientUserID,
			func(s *Signer) string { return s.ClientUserID })
		if !ok {
			return nil
		}
		return signer
	}
}

// takeByClientUserID removes and returns the first element of pool whose
// correlation key matches id.
func takeByClientUserID[T any](pool *[]T, id string, key func(T) string) (T, bool) {
	for i, candidate := range *pool {
		if key(candidate) == id {
			*pool = append((*pool)[:i], (*pool)[i+1:]...)
			return candidate, true
		}
	}
	var zero T
	return zero, false
}
