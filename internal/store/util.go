package store

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/estimagic/momentsens/internal/util"
	"github.com/hashicorp/go-version"
)

// HashBytes hashes arbitrary content.
func HashBytes(b []byte) Hash {
	sum := md5.Sum(b)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashValue hashes the JSON encoding of v.
func HashValue(v interface{}) (Hash, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

// hashFile hashes the contents of filename, or returns an empty hash
// if the file doesn't exist.
func hashFile(filename string) (Hash, error) {
	exists, err := util.FileExists(filename)
	if err != nil || !exists {
		return "", err
	}
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return HashBytes(bytes), nil
}

// compatible reports whether a store written by version stored can
// be used by version current. Versions that don't parse (such as
// development builds) are only compatible with themselves.
func compatible(stored, current string) bool {
	if stored == current {
		return true
	}
	vs, err := version.NewVersion(stored)
	if err != nil {
		return false
	}
	vc, err := version.NewVersion(current)
	if err != nil {
		return false
	}
	return vs.Segments()[0] == vc.Segments()[0]
}
