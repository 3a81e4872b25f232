package connect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/peopledoc/go-docusign/pkg/models"
)

// RecipientSnapshot is one recipient's state in the callback snapshot:
// the raw field values found on its node, plus every status timestamp
// present, converted to offset-aware instants.
type RecipientSnapshot struct {
	ClientUserID string
	RoutingOrder int

	// Fields holds the raw text of every non-empty child element, keyed
	// by element name (Status, RecipientIPAddress, ...).
	Fields map[string]string

	// StatusTimes holds the converted timestamp for every recipient
	// status present on the node. Completed is read from the Signed
	// element.
	StatusTimes map[models.RecipientStatus]time.Time
}

// Recipients returns one snapshot per recipient node carrying a
// ClientUserId, sorted ascending by routing order.
func (p *Parser) Recipients() ([]RecipientSnapshot, error) {
	var snapshots []RecipientSnapshot
	for _, node := range p.recipientNodes() {
		fields := map[string]string{}
		for _, child := range node.ChildElements() {
			if text := strings.TrimSpace(child.Text()); text != "" {
				fields[child.Tag] = text
			}
		}
		clientUserID := fields["ClientUserId"]
		if clientUserID == "" {
			continue
		}
		rawOrder, ok := fields["RoutingOrder"]
		if !ok {
			return nil, fmt.Errorf("recipient %s has no RoutingOrder", clientUserID)
		}
		order, err := strconv.Atoi(rawOrder)
		if err != nil {
			return nil, fmt.Errorf("recipient %s RoutingOrder %q is not an integer: %w",
				clientUserID, rawOrder, err)
		}
		snapshot := RecipientSnapshot{
			ClientUserID: clientUserID,
			RoutingOrder: order,
			Fields:       fields,
			StatusTimes:  map[models.RecipientStatus]time.Time{},
		}
		for _, status := range models.RecipientStatuses {
			raw, ok := fields[recipientStatusElement(status)]
			if !ok {
				continue
			}
			t, err := p.Time(raw)
			if err != nil {
				return nil, err
			}
			snapshot.StatusTimes[status] = t
		}
		snapshots = append(snapshots, snapshot)
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].RoutingOrder < snapshots[j].RoutingOrder
	})
	return snapshots, nil
}
