package mapper

import (
	"fmt"

	"rebelcal/src-server/model"
	"rebelcal/src-server/utils"
)

// OrganizationRecord is one card of the organization directory.
type OrganizationRecord struct {
	Name string `json:"name"`
}

func Organization(rec OrganizationRecord) (*model.Organization, error) {
	o := &model.Organization{Name: utils.CleanupString(rec.Name)}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("Organization: %w", err)
	}
	return o, nil
}
