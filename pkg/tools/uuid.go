package tools

import (
	"strings"

	"github.com/google/uuid"
)

// UUID returns a time based uuid without dashes.
func UUID() string {
	u, err := uuid.NewUUID()
	if err != nil {
		u = uuid.New()
	}
	return strings.Replace(u.String(), "-", "", 4)
}
