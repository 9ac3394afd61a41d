package driver

import (
	"bufio"
	"io"
	"os"
)

// ReadSource reads source text from opt.Src, or from stdin if no path was
// given. Unlike the teacher's util.ReadSource, which races a goroutine-fed
// stdin read against a 500ms timer, this reads stdin directly and blocks
// until EOF: spec.md §5's single sequential pipeline has no timer goroutine
// to race against, and a compiler invoked with piped input should simply
// wait for it.
func ReadSource(opt Options) (string, error) {
	if opt.Src != "" {
		b, err := os.ReadFile(opt.Src)
		return string(b), err
	}
	b, err := io.ReadAll(bufio.NewReader(os.Stdin))
	return string(b), err
}
