package oracle

import (
	"hash/crc32"
	"io"

	"github.com/go-git/go-billy/v5"

	"dualdiff/internal/fault"
)

const bufferSize = 32 * 1024 // 32KB buffer for streaming

// checksum streams the file at rel through CRC-32 (IEEE).
func checksum(fsys billy.Filesystem, rel string) (uint32, error) {
	file, err := fsys.Open(rel)
	if err != nil {
		return 0, fault.Compare("open", fsys.Join(fsys.Root(), rel), err)
	}
	defer file.Close()

	h := crc32.NewIEEE()
	buf := make([]byte, bufferSize)

	for {
		n, err := file.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fault.Compare("read", fsys.Join(fsys.Root(), rel), err)
		}
	}

	return h.Sum32(), nil
}
