package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticRegistrySnapshotPreservesRegistrationOrder(t *testing.T) {
	r := NewStaticRegistry()
	r.Add("second", []string{"b1.", "b2."})
	r.Add("first", []string{"a1."})

	assert.Equal(t, []string{"b1.", "b2.", "a1."}, r.Snapshot())
}

func TestStaticRegistryReAddReplacesInPlace(t *testing.T) {
	r := NewStaticRegistry()
	r.Add("core", []string{"old."})
	r.Add("extra", []string{"extra."})
	r.Add("core", []string{"new1.", "new2."})

	assert.Equal(t, []string{"new1.", "new2.", "extra."}, r.Snapshot())
}

func TestTextJoinsWithNewlines(t *testing.T) {
	r := NewStaticRegistry()
	r.Add("core", []string{"a.", "b."})
	assert.Equal(t, "a.\nb.", Text(r))
}

func TestEmptyRegistrySnapshotIsEmpty(t *testing.T) {
	r := NewStaticRegistry()
	assert.Empty(t, r.Snapshot())
	assert.Equal(t, "", Text(r))
}
