package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	assert.Equal(t, "how-to-budget", MakeSlug("How to Budget"))
	assert.Equal(t, "saving-101-the-basics", MakeSlug("Saving 101: The Basics!"))
	assert.Equal(t, "post", MakeSlug("???"))
	assert.Equal(t, "a-b", MakeSlug("  a    b  "))
}
