package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/safariskills/passport/internal/client/scan"
)

// lineScanner stands in for a camera in the terminal build: it reads one
// line from the reader and delivers it as the decoded QR payload. An empty
// line cancels the session without a decode.
type lineScanner struct {
	reader *bufio.Reader
	w      io.Writer
}

func newLineScanner(reader *bufio.Reader, w io.Writer) *lineScanner {
	return &lineScanner{reader: reader, w: w}
}

func (s *lineScanner) Start(ctx context.Context, _ scan.Options, onDecode func(string)) error {
	fmt.Fprint(s.w, "Paste the QR payload (empty line to cancel)\n> ")
	line, err := s.reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		if err != nil {
			return err
		}
		return nil
	}
	onDecode(line)
	return nil
}

func (s *lineScanner) Stop(context.Context) error { return nil }
