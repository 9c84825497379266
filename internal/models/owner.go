package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Owner says who a project belongs to: a tenant, or the studio itself.
// Internal projects must never surface in any client-scoped read, so the
// distinction is a closed variant rather than a nullable foreign key.
type Owner struct {
	tenantID string
}

func InternalOwner() Owner {
	return Owner{}
}

func TenantOwner(clientID string) Owner {
	return Owner{tenantID: clientID}
}

func (o Owner) IsInternal() bool {
	return o.tenantID == ""
}

// Tenant returns the owning client id, if any.
func (o Owner) Tenant() (string, bool) {
	return o.tenantID, o.tenantID != ""
}

// Value stores internal ownership as SQL NULL.
func (o Owner) Value() (driver.Value, error) {
	if o.tenantID == "" {
		return nil, nil
	}
	return o.tenantID, nil
}

func (o *Owner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		o.tenantID = ""
	case string:
		o.tenantID = v
	case []byte:
		o.tenantID = string(v)
	default:
		return fmt.Errorf("owner: cannot scan %T", src)
	}
	return nil
}

// MarshalJSON keeps the wire shape of the clientId field: a string for
// tenant-owned projects, null for internal ones.
func (o Owner) MarshalJSON() ([]byte, error) {
	if o.tenantID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(o.tenantID)
}

func (o *Owner) UnmarshalJSON(data []byte) error {
	var id *string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	if id == nil {
		o.tenantID = ""
	} else {
		o.tenantID = *id
	}
	return nil
}
