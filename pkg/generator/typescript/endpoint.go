package typescript

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/blimu-dev/schemagen/pkg/ir"
	"github.com/blimu-dev/schemagen/pkg/schema"
)

// PayloadParam is the name of the single parameter of every endpoint method.
const PayloadParam = "payload"

// SynthesizeEndpoint builds the async client method for one endpoint. The
// method sends the client's checksum under header, and for every verb but GET
// it sends payload as a JSON body. A non-ok response is parsed and thrown.
func SynthesizeEndpoint(name string, ep schema.Endpoint, header string) ir.Method {
	input := MapType(ep.Input)
	output := MapType(ep.Returns)
	return ir.NewMethod(name).
		Async().
		Param(PayloadParam, input).
		Returns(output).
		Body(endpointBody(ep, header, output)).
		Build()
}

func endpointBody(ep schema.Endpoint, header string, output ir.TargetType) string {
	var b strings.Builder
	line := func(depth int, s string) {
		b.WriteString(strings.Repeat("\t", depth))
		b.WriteString(s)
		b.WriteString("\n")
	}

	line(0, "try {")
	line(1, "const response = await fetch("+jsString(ep.URI)+", {")
	line(2, "headers: {")
	line(3, jsString(header)+": this.checksum,")
	line(2, "},")
	if ep.Method.HasBody() {
		line(2, "method: "+jsString(string(ep.Method))+",")
		line(2, "body: JSON.stringify("+PayloadParam+"),")
	}
	line(1, "});")
	line(1, "if (response.ok) {")
	line(2, "const body: "+RenderType(output)+" = await response.json();")
	line(2, "return body;")
	line(1, "} else {")
	line(2, "const error = await response.json();")
	line(2, "throw error;")
	line(1, "}")
	line(0, "} catch (err) {")
	line(1, "throw err;")
	b.WriteString("}")
	return b.String()
}

// jsString quotes s as a double-quoted JavaScript string literal.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
