package models

import "time"

const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipBlocked  = "blocked"
)

// Friendship is a directed edge: UserID lists FriendID.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:255;not null;uniqueIndex:idx_friendships_user_friend" json:"userId"`
	FriendID  string    `gorm:"size:255;not null;uniqueIndex:idx_friendships_user_friend" json:"friendId"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
