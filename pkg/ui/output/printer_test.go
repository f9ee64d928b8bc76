package output

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/makecatalogs/pkg/report"
	"github.com/stretchr/testify/assert"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut), &out, &errOut
}

func TestProgressLinesArePlainForBuffers(t *testing.T) {
	p, out, errOut := newTestPrinter()

	p.Hashing("Firefox.png")
	p.Adding("apps/Firefox-128.plist", "testing")
	p.Created("/repo/catalogs/testing")

	assert.Equal(t,
		"Hashing Firefox.png...\n"+
			"Adding apps/Firefox-128.plist to testing...\n"+
			"Created /repo/catalogs/testing...\n",
		out.String())
	assert.Empty(t, errOut.String())
}

func TestMessagesBlock(t *testing.T) {
	p, out, errOut := newTestPrinter()

	p.Messages([]report.Entry{
		{Severity: report.Advisory, Message: "WARNING: icons missing"},
		{Severity: report.Failure, Message: "WARNING: bad \xff byte"},
	})

	assert.Empty(t, out.String())
	assert.Equal(t, "\nWARNING: icons missing\nWARNING: bad � byte\n", errOut.String())
}

func TestMessagesEmpty(t *testing.T) {
	p, _, errOut := newTestPrinter()
	p.Messages(nil)
	assert.Empty(t, errOut.String())
}

func TestDiscard(t *testing.T) {
	p := Discard()
	p.Hashing("x")
	p.Messages([]report.Entry{{Message: "y"}})
}
