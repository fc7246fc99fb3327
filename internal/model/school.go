package model

import "time"

// ── 学校状态常量 ──
//
// 状态机：pending → active（超管验证，同时生成注册链接）
//         pending → 删除（拒绝路径，硬删除）
//         active ⇄ inactive（停用后链接失效，重新验证会换发新链接）

const (
	SchoolStatusPending  = "pending"
	SchoolStatusActive   = "active"
	SchoolStatusInactive = "inactive"
)

// School 学校（租户）表 — 对应 schools
// RegistrationLink 仅在学校激活后存在，唯一标识一所学校
type School struct {
	SchoolID         string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_id"`
	Name             string     `gorm:"type:varchar(150);not null"                     json:"name"`
	Email            string     `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone            string     `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Address          string     `gorm:"type:text"                                      json:"address,omitempty"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	RegistrationLink *string    `gorm:"type:varchar(64)"                               json:"registration_link,omitempty"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (School) TableName() string { return "schools" }
