package versioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", StripHTML("plain text"))
	assert.Equal(t, "needs work", StripHTML("<p>needs <b>work</b></p>"))
	assert.Equal(t, "a < b", StripHTML("a < b"))
	assert.Equal(t, "<>", StripHTML("<>"))
}
