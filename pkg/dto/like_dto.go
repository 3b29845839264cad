package dto

const (
	StatusLiked    = "liked"
	StatusMatched  = "matched"
	StatusDisliked = "disliked"
)

type LikeResponse struct {
	Status          string `json:"status"`
	AlreadyRecorded bool   `json:"alreadyRecorded,omitempty"`
}
