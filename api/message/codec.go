// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package message

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"go.uber.org/provider/api/binding"
)

// The envelope codec is intentionally small: it only knows how to split an
// envelope into header blocks and a body, and how to put them back together.

type xmlEnvelope struct {
	XMLName xml.Name
	Header  *xmlHeader `xml:"Header"`
	Body    xmlBody    `xml:"Body"`
}

type xmlHeader struct {
	Blocks []xmlBlock `xml:",any"`
}

type xmlBlock struct {
	XMLName xml.Name
	Content string `xml:",innerxml"`
}

type xmlBody struct {
	Content []byte `xml:",innerxml"`
}

type xmlFault struct {
	XMLName xml.Name
	Code    string     `xml:"faultcode"`
	Reason  string     `xml:"faultstring"`
	Detail  *xmlDetail `xml:"detail"`
}

type xmlDetail struct {
	Content string `xml:",innerxml"`
}

type parts struct {
	headers []HeaderBlock
	payload Source
	fault   *Fault
}

func encodeEnvelope(b binding.Binding, p parts) (Source, error) {
	env := xmlEnvelope{
		XMLName: xml.Name{Space: b.Namespace(), Local: "Envelope"},
		Body:    xmlBody{Content: p.payload.Bytes()},
	}
	if len(p.headers) > 0 {
		h := &xmlHeader{Blocks: make([]xmlBlock, len(p.headers))}
		for i, block := range p.headers {
			h.Blocks[i] = xmlBlock{XMLName: block.Name, Content: block.Content}
		}
		env.Header = h
	}

	out, err := xml.Marshal(env)
	if err != nil {
		return Source{}, fmt.Errorf("failed to encode %v envelope: %v", b, err)
	}
	return NewSource(out), nil
}

func decodeEnvelope(b binding.Binding, data []byte) (parts, error) {
	if !b.IsEnvelope() {
		return decodeBare(data)
	}

	var env xmlEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return parts{}, fmt.Errorf("failed to decode %v envelope: %v", b, err)
	}
	if env.XMLName.Local != "Envelope" || env.XMLName.Space != b.Namespace() {
		return parts{}, fmt.Errorf("failed to decode %v envelope: unexpected root element {%v}%v",
			b, env.XMLName.Space, env.XMLName.Local)
	}

	var p parts
	if env.Header != nil {
		p.headers = make([]HeaderBlock, len(env.Header.Blocks))
		for i, block := range env.Header.Blocks {
			p.headers[i] = HeaderBlock{Name: block.XMLName, Content: block.Content}
		}
	}
	p.payload = NewSource(env.Body.Content)
	fault, err := decodeFault(p.payload.Bytes())
	if err != nil {
		return parts{}, err
	}
	p.fault = fault
	return p, nil
}

// decodeBare handles bindings without an envelope: the whole body is the
// payload.
func decodeBare(data []byte) (parts, error) {
	p := parts{payload: NewSource(data)}
	fault, err := decodeFault(p.payload.Bytes())
	if err != nil {
		return parts{}, err
	}
	p.fault = fault
	return p, nil
}

func decodeFault(payload []byte) (*Fault, error) {
	if !isFaultElement(payload) {
		return nil, nil
	}

	var f xmlFault
	if err := xml.Unmarshal(payload, &f); err != nil {
		return nil, fmt.Errorf("failed to decode fault: %v", err)
	}
	fault := &Fault{Code: f.Code, Reason: f.Reason}
	if f.Detail != nil {
		fault.Detail = f.Detail.Content
	}
	return fault, nil
}

func encodeFault(b binding.Binding, f Fault) Source {
	x := xmlFault{
		XMLName: xml.Name{Space: b.Namespace(), Local: "Fault"},
		Code:    f.Code,
		Reason:  f.Reason,
	}
	if f.Detail != "" {
		x.Detail = &xmlDetail{Content: f.Detail}
	}
	// Fault fields are plain strings so marshaling cannot fail.
	out, _ := xml.Marshal(x)
	return NewSource(out)
}

func isFaultElement(payload []byte) bool {
	d := xml.NewDecoder(bytes.NewReader(payload))
	for {
		tok, err := d.Token()
		if err != nil {
			return false
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local == "Fault"
		}
	}
}
