package importer

import (
	"errors"
	"fmt"
	"io"

	"github.com/emersion/go-mbox"

	"github.com/lu-zhengda/workapi/internal/domain"
)

// MessageFunc receives each message of an archive. err is set when that
// message could not be parsed; email is nil in that case. Returning an error
// stops the iteration.
type MessageFunc func(email *domain.Email, err error) error

// ReadMbox calls fn for every message in an mbox archive. A message that
// fails to parse is reported to fn and iteration continues.
func ReadMbox(r io.Reader, fn MessageFunc) error {
	reader := mbox.NewReader(r)
	for n := 1; ; n++ {
		msg, err := reader.NextMessage()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read mbox message %d: %w", n, err)
		}

		email, err := ParseMessage(msg)
		if err != nil {
			err = fmt.Errorf("message %d: %w", n, err)
		}
		if err := fn(email, err); err != nil {
			return err
		}
	}
}
