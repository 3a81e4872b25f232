package models

// TabKind identifies one of the fixed set of tab variants DocuSign
// understands. The set is closed: adding a variant means extending the
// switch in Tab.Payload, not subclassing.
type TabKind string

const (
	TabKindSignHere    TabKind = "signHere"
	TabKindInitialHere TabKind = "initialHere"
	TabKindApprove     TabKind = "approve"
	TabKindFullName    TabKind = "fullName"
	TabKindDateSigned  TabKind = "dateSigned"
	TabKindTitle       TabKind = "title"
)

// TabKinds lists every tab variant.
var TabKinds = []TabKind{
	TabKindSignHere,
	TabKindInitialHere,
	TabKindApprove,
	TabKindFullName,
	TabKindDateSigned,
	TabKindTitle,
}

// WireCollection returns the name of the wire collection this tab kind is
// grouped under inside a recipient's tabs mapping (signHereTabs,
// approveTabs, ...).
func (k TabKind) WireCollection() string { return string(k) + "Tabs" }

// Tab is a positioned placeholder on a document page: a signature, a set
// of initials, an approval button, or a piece of signer data. A tab
// belongs to exactly one document and is attached to exactly one recipient
// at serialization time.
type Tab struct {
	Kind TabKind

	DocumentID  int
	PageNumber  int // defaults to 1
	RecipientID string
	X           int
	Y           int

	// Anchor-string positioning, used instead of absolute offsets.
	AnchorString             string
	AnchorXOffset            string
	AnchorYOffset            string
	AnchorIgnoreIfNotPresent *bool
	AnchorUnits              string

	ConditionalParentLabel string
	ConditionalParentValue string
	CustomTabID            string
	TemplateLocked         *bool
	TemplateRequired       *bool
	TabLabel               string

	// Formatting, honored on Approve, FullName, DateSigned and Title tabs.
	Bold      *bool
	Italic    *bool
	Underline *bool
	Font      string
	FontColor string
	FontSize  string

	Name       string
	Value      string
	ButtonText string
	Optional   *bool
	ScaleValue string
	Width      *int
	Height     *int
}

// NewSignHereTab returns a signature placeholder tab.
func NewSignHereTab(documentID, pageNumber, x, y int) Tab {
	return Tab{Kind: TabKindSignHere, DocumentID: documentID, PageNumber: pageNumber, X: x, Y: y}
}

// NewInitialHereTab returns an initials placeholder tab.
func NewInitialHereTab(documentID, pageNumber, x, y int) Tab {
	return Tab{Kind: TabKindInitialHere, DocumentID: documentID, PageNumber: pageNumber, X: x, Y: y}
}

// NewApproveTab returns an approval button tab.
func NewApproveTab(documentID, pageNumber, x, y int) Tab {
	return Tab{Kind: TabKindApprove, DocumentID: documentID, PageNumber: pageNumber, X: x, Y: y}
}

// NewFullNameTab returns a tab showing the recipient's full name.
func NewFullNameTab(documentID, pageNumber, x, y int) Tab {
	return Tab{Kind: TabKindFullName, DocumentID: documentID, PageNumber: pageNumber, X: x, Y: y}
}

// NewDateSignedTab returns a tab showing the date the recipient signed.
func NewDateSignedTab(documentID, pageNumber, x, y int) Tab {
	return Tab{Kind: TabKindDateSigned, DocumentID: documentID, PageNumber: pageNumber, X: x, Y: y}
}

// NewTitleTab returns a tab showing the recipient's title.
func NewTitleTab(documentID, pageNumber, x, y int) Tab {
	return Tab{Kind: TabKindTitle, DocumentID: documentID, PageNumber: pageNumber, X: x, Y: y}
}

// Payload returns the wire representation of the tab, restricted to the
// variant's declared attribute set. The positioning fields are required
// by DocuSign and always serialize, using null for an unset recipient id.
func (t Tab) Payload() map[string]any {
	p := map[string]any{
		"documentId":  t.DocumentID,
		"pageNumber":  t.pageNumber(),
		"recipientId": nullable(t.RecipientID),
		"xPosition":   t.X,
		"yPosition":   t.Y,
	}

	putString(p, "anchorString", t.AnchorString)
	putString(p, "anchorXOffset", t.AnchorXOffset)
	putString(p, "anchorYOffset", t.AnchorYOffset)
	putBool(p, "anchorIgnoreIfNotPresent", t.AnchorIgnoreIfNotPresent)
	putString(p, "anchorUnits", t.AnchorUnits)
	putString(p, "conditionalParentLabel", t.ConditionalParentLabel)
	putString(p, "conditionalParentValue", t.ConditionalParentValue)
	putString(p, "customTabId", t.CustomTabID)
	putBool(p, "templateLocked", t.TemplateLocked)
	putBool(p, "templateRequired", t.TemplateRequired)
	putString(p, "tabLabel", t.TabLabel)

	switch t.Kind {
	case TabKindSignHere, TabKindInitialHere:
		putString(p, "name", t.Name)
		putBool(p, "optional", t.Optional)
		putString(p, "scaleValue", t.ScaleValue)
	case TabKindApprove:
		t.putFormatting(p)
		putString(p, "buttonText", t.ButtonText)
		putInt(p, "height", t.Height)
		putInt(p, "width", t.Width)
	case TabKindFullName:
		t.putFormatting(p)
		putString(p, "name", t.Name)
	case TabKindDateSigned:
		t.putFormatting(p)
		putString(p, "name", t.Name)
		putString(p, "value", t.Value)
	case TabKindTitle:
		t.putFormatting(p)
		putString(p, "name", t.Name)
		putString(p, "value", t.Value)
		putInt(p, "width", t.Width)
	}

	return p
}

func (t Tab) pageNumber() int {
	if t.PageNumber == 0 {
		return 1
	}
	return t.PageNumber
}

func (t Tab) putFormatting(p map[string]any) {
	putBool(p, "bold", t.Bold)
	putBool(p, "italic", t.Italic)
	putBool(p, "underline", t.Underline)
	putString(p, "font", t.Font)
	putString(p, "fontColor", t.FontColor)
	putString(p, "fontSize", t.FontSize)
}
