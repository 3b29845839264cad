package models

import "time"

const (
	DefaultImageURL = "https://r29-friender.s3.us-west-1.amazonaws.com/default.png"
	DefaultRadius   = 10000
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string    `gorm:"type:text;not null" json:"firstName"`
	LastName  string    `gorm:"type:text;not null" json:"lastName"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	ImageURL  string    `gorm:"type:text" json:"imageUrl"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Location  int       `gorm:"not null;index" json:"location"`
	Radius    int       `gorm:"not null;default:10000" json:"radius"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Like is a directed edge actor -> target, unique per ordered pair.
type Like struct {
	ActorID   uint      `gorm:"primaryKey;autoIncrement:false"`
	TargetID  uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Actor     User      `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	Target    User      `gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Like) TableName() string {
	return "likes"
}

type Dislike struct {
	ActorID   uint      `gorm:"primaryKey;autoIncrement:false"`
	TargetID  uint      `gorm:"primaryKey;autoIncrement:false;index"`
	Actor     User      `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	Target    User      `gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (Dislike) TableName() string {
	return "dislikes"
}
