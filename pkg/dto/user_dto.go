package dto

// CandidateView is what one user is shown about another. Distance is
// computed per request and never stored.
type CandidateView struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
	Bio       string `json:"bio"`
	Distance  *int   `json:"distance"`
}

// UserProfileDTO is the owner's own full profile.
type UserProfileDTO struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
	Bio       string `json:"bio"`
	Location  int    `json:"location"`
	Radius    int    `json:"radius"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Location  int    `json:"location" validate:"required,min=10000,max=99999"`
	Radius    int    `json:"radius" validate:"required,gt=0"`
	Bio       string `json:"bio"`
}

type MatchesResponse struct {
	Matches []CandidateView `json:"matches"`
}
