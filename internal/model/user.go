package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// User 用户只读视图，账号注册与登录由外部认证服务维护
// swagger:model User
type User struct {
	BaseModel
	FullName string   `gorm:"size:100;not null" json:"fullName"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Avatar   string   `gorm:"size:255" json:"avatar"`
	Grade    string   `gorm:"size:20;index" json:"grade"` // 年级，排行榜按此分组（G1-G12）
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
