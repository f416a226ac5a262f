package tree

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/cespare/xxhash/v2"
	mt "github.com/txaty/go-merkletree"
)

// XXHashFunc is the go-merkletree hash function adapter: xxHash64 of the
// input as 8 big-endian bytes.
func XXHashFunc(data []byte) ([]byte, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, xxhash.Sum64(data))
	return buf, nil
}

type leaf []byte

func (l leaf) Serialize() ([]byte, error) {
	return l, nil
}

// Fingerprint returns a Merkle root over the (path, kind, status) of every
// node below root in tree order. Two trees with identical classification
// at every path yield the same fingerprint.
func Fingerprint(root *Node) (string, error) {
	var blocks []mt.DataBlock
	Walk(root, func(n *Node) bool {
		if n.Path == "" {
			return true
		}
		kind := byte('f')
		if n.IsDir {
			kind = 'd'
		}
		b := make([]byte, 0, len(n.Path)+3)
		b = append(b, n.Path...)
		b = append(b, 0, kind, byte('0'+n.Status))
		blocks = append(blocks, leaf(b))
		return true
	})

	// The merkle tree needs at least two leaves.
	if len(blocks) < 2 {
		var data []byte
		for _, b := range blocks {
			data = append(data, b.(leaf)...)
		}
		sum, _ := XXHashFunc(data)
		return hex.EncodeToString(sum), nil
	}

	t, err := mt.New(&mt.Config{
		HashFunc: XXHashFunc,
		Mode:     mt.ModeTreeBuild,
	}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build fingerprint tree: %w", err)
	}
	return hex.EncodeToString(t.Root), nil
}
