package devices

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/mobile-next/adbrobot/types"
)

// UITree is one parsed uiautomator dump.
type UITree struct {
	doc *xmlquery.Node
	raw []byte
}

// ParseUITree parses the xml written by `uiautomator dump`.
func ParseUITree(data []byte) (*UITree, error) {
	if !bytes.HasPrefix(data, []byte("<")) {
		return nil, &DumpError{Payload: data}
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ui dump: %w", err)
	}

	if xmlquery.FindOne(doc, "/*") == nil {
		return nil, &DumpError{Payload: data}
	}

	return &UITree{doc: doc, raw: data}, nil
}

// Raw returns the xml the tree was parsed from.
func (t *UITree) Raw() []byte {
	return t.raw
}

// Query returns all nodes matching an XPath expression.
func (t *UITree) Query(expr string) ([]*xmlquery.Node, error) {
	nodes, err := xmlquery.QueryAll(t.doc, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", expr, err)
	}
	return nodes, nil
}

// NodeBounds returns the bounds of the first node whose attrName equals
// attrValue. found is false when nothing matches; err is set only when the
// query could not be evaluated.
func (t *UITree) NodeBounds(attrName, attrValue string) (bounds string, found bool, err error) {
	expr := fmt.Sprintf("//node[@%s=%s][@bounds]", attrName, xpathLiteral(attrValue))

	node, err := xmlquery.Query(t.doc, expr)
	if err != nil {
		return "", false, fmt.Errorf("invalid query %q: %w", expr, err)
	}

	if node == nil {
		return "", false, nil
	}

	return node.SelectAttr("bounds"), true, nil
}

// Elements flattens the tree into the nodes a user can see and identify:
// those with text, a description or a hint, and a non-empty area.
func (t *UITree) Elements() []types.ScreenElement {
	var elements []types.ScreenElement

	for _, node := range xmlquery.Find(t.doc, "//node") {
		text := node.SelectAttr("text")
		desc := node.SelectAttr("content-desc")
		hint := node.SelectAttr("hint")
		if text == "" && desc == "" && hint == "" {
			continue
		}

		bounds, err := ParseBounds(node.SelectAttr("bounds"))
		if err != nil {
			continue
		}

		rect := bounds.Rect()
		if rect.Width <= 0 || rect.Height <= 0 {
			continue
		}

		element := types.ScreenElement{
			Type:      node.SelectAttr("class"),
			Package:   node.SelectAttr("package"),
			Bounds:    bounds.String(),
			Rect:      rect,
			Clickable: node.SelectAttr("clickable") == "true",
		}

		if text != "" {
			element.Text = &text
		}

		if desc != "" {
			element.Label = &desc
		} else if hint != "" {
			element.Label = &hint
		}

		if id := node.SelectAttr("resource-id"); id != "" {
			element.Identifier = &id
		}

		if node.SelectAttr("focused") == "true" {
			focused := true
			element.Focused = &focused
		}

		elements = append(elements, element)
	}

	return elements
}

// xpathLiteral quotes s for use inside an XPath expression.
func xpathLiteral(s string) string {
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}

	parts := strings.Split(s, `"`)
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `'"'`)
		}
		quoted = append(quoted, `"`+part+`"`)
	}

	return "concat(" + strings.Join(quoted, ", ") + ")"
}
