package config

import "fmt"

// BlobKeyStruct names the three blobs the logbook keeps in the key-value
// store. Every key shares a prefix so several deployments can share one
// Redis database or table.
type BlobKeyStruct struct {
	prefix string
}

func NewBlobKeyStruct(prefix string) *BlobKeyStruct {
	return &BlobKeyStruct{prefix: prefix}
}

// CurrentSessionKey returns the key of the active login session.
func (k *BlobKeyStruct) CurrentSessionKey() string {
	return k.key("current-session")
}

// EntriesKey returns the key of the ordered lesson entry list.
func (k *BlobKeyStruct) EntriesKey() string {
	return k.key("entries")
}

// AccountsKey returns the key of the ordered account list.
func (k *BlobKeyStruct) AccountsKey() string {
	return k.key("accounts")
}

func (k *BlobKeyStruct) key(name string) string {
	if k.prefix == "" {
		return name
	}
	return fmt.Sprintf("%s:%s", k.prefix, name)
}

// BlobKey uses the default prefix. Servers build their own from KEY_PREFIX.
var BlobKey = NewBlobKeyStruct("sodaubai")
