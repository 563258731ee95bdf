package model

import (
	"strings"

	"github.com/go-ap/errors"
	"github.com/uptrace/bun"
)

// Organization comes from the student-org directory. It is not linked to
// Event.Organization; the two are kept independently.
type Organization struct {
	bun.BaseModel `bun:"table:organizations"`

	ID   int64  `bun:"id,pk,autoincrement" json:"id"`
	Name string `bun:"name,notnull,unique" json:"name"` // required
}

func (o *Organization) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return errors.BadRequestf("organization name is blank")
	}
	return nil
}
