package storage

import (
	"strings"
	"testing"
)

func TestNewKey(t *testing.T) {
	key := NewKey(PrefixAvatars, "Photo.PNG")

	if !strings.HasPrefix(key, PrefixAvatars+"/") {
		t.Fatalf("key %q missing prefix", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Fatalf("key %q should keep a lowercased extension", key)
	}
}

func TestNewKey_Unique(t *testing.T) {
	if NewKey(PrefixLeases, "contract.pdf") == NewKey(PrefixLeases, "contract.pdf") {
		t.Fatalf("two keys for the same filename must differ")
	}
}

func TestNewKey_NoExtension(t *testing.T) {
	key := NewKey(PrefixAnnouncements, "README")
	if strings.Contains(key[len(PrefixAnnouncements)+1:], ".") {
		t.Fatalf("key %q should have no extension", key)
	}
}
