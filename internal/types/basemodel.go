package types

import (
	"context"
	"time"
)

// BaseModel carries the tenancy and audit columns shared by every
// persisted record. Any change here needs a matching migration for all
// tables that embed it.
type BaseModel struct {
	TenantID  string    `db:"tenant_id" json:"tenant_id"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	CreatedBy string    `db:"created_by" json:"created_by"`
	UpdatedBy string    `db:"updated_by" json:"updated_by"`
}

func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		TenantID:  GetTenantID(ctx),
		Status:    StatusPublished,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: GetUserID(ctx),
		UpdatedBy: GetUserID(ctx),
	}
}

// Touch stamps the record with the caller and current time before a write.
func (m *BaseModel) Touch(ctx context.Context) {
	m.UpdatedAt = time.Now().UTC()
	m.UpdatedBy = GetUserID(ctx)
}
