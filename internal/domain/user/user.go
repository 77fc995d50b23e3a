package user

type User struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null;column:name" json:"name"`
}

func (User) TableName() string { return "app_user" }
