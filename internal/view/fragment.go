package view

import (
	"bytes"
	"log"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// lineFragment renders the Bootstrap markup for one preview row: thumbnail
// (image or placeholder), name, quantity stepper, subtotal, remove control.
func lineFragment(l Line, image string) string {
	lineID := strconv.FormatInt(l.LineID, 10)

	root := el(atom.Div,
		attr("class", "cart-preview-item border-bottom p-2"),
		attr("data-item-id", lineID),
	)
	row := el(atom.Div, attr("class", "d-flex align-items-center"))
	root.AppendChild(row)

	thumb := el(atom.Div, attr("class", "flex-shrink-0 cart-preview-thumb"))
	if image != "" {
		img := el(atom.Img,
			attr("src", image),
			attr("alt", l.Name),
			attr("class", "img-fluid rounded"),
		)
		thumb.AppendChild(img)
	} else {
		placeholder := el(atom.Div, attr("class", "bg-light rounded d-flex align-items-center justify-content-center"))
		placeholder.AppendChild(el(atom.I, attr("class", "bi bi-image text-muted")))
		thumb.AppendChild(placeholder)
	}
	row.AppendChild(thumb)

	body := el(atom.Div, attr("class", "flex-grow-1 ms-3"))
	name := el(atom.H6, attr("class", "mb-0 small"))
	name.AppendChild(text(l.Name))
	body.AppendChild(name)

	controls := el(atom.Div, attr("class", "d-flex justify-content-between align-items-center mt-1"))
	stepper := el(atom.Div, attr("class", "input-group input-group-sm"))

	dec := el(atom.Button,
		attr("class", "btn btn-decrease-quantity"),
		attr("type", "button"),
		attr("data-item-id", lineID),
	)
	dec.AppendChild(text("-"))
	stepper.AppendChild(dec)

	qty := el(atom.Input,
		attr("type", "text"),
		attr("class", "form-control text-center item-quantity"),
		attr("value", strconv.Itoa(l.Quantity)),
		attr("readonly", ""),
	)
	stepper.AppendChild(qty)

	inc := el(atom.Button,
		attr("class", "btn btn-increase-quantity"),
		attr("type", "button"),
		attr("data-item-id", lineID),
	)
	inc.AppendChild(text("+"))
	stepper.AppendChild(inc)
	controls.AppendChild(stepper)

	subtotal := el(atom.Div, attr("class", "ms-2"))
	amount := el(atom.Span, attr("class", "fw-bold cart-preview-subtotal"))
	amount.AppendChild(text(l.Subtotal))
	subtotal.AppendChild(amount)
	controls.AppendChild(subtotal)
	body.AppendChild(controls)
	row.AppendChild(body)

	removeWrap := el(atom.Div, attr("class", "ms-2"))
	remove := el(atom.Button,
		attr("class", "btn btn-sm btn-remove-item"),
		attr("data-item-id", lineID),
	)
	remove.AppendChild(el(atom.I, attr("class", "bi bi-trash")))
	removeWrap.AppendChild(remove)
	row.AppendChild(removeWrap)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		log.Printf("render line fragment for item %s: %v", lineID, err)
		return ""
	}
	return buf.String()
}

func el(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
