// Package wordlist reads newline separated word lists such as KBBI dumps or
// frequency lists ("word count" per line).
package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Load maps path into memory and returns the first field of every line.
// Blank lines and lines starting with '#' are skipped.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		// mmap rejects zero-length mappings
		return nil, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	defer m.Unmap()

	words, err := Parse(m)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return words, nil
}

// maxLineBytes caps a single line; longer lines fail the whole list.
const maxLineBytes = 1024 * 1024

// Parse extracts words from list data. Returned strings do not alias data.
func Parse(data []byte) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		fields := bytes.Fields(line)
		words = append(words, string(fields[0]))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
