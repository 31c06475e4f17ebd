package dataset

import (
	"fmt"

	"github.com/google/uuid"
)

// scope is the named diagnostic context wrapping registry
// materialization and reader resolution. Every failure inside the scope
// is attributed to the dataset name, with a short correlation ID so
// separate attempts for the same name can be told apart in output.
type scope struct {
	name string
	id   string
}

func newScope(name string) scope {
	return scope{name: name, id: uuid.NewString()[:8]}
}

func (s scope) wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dataset %q [%s]: %w", s.name, s.id, err)
}
