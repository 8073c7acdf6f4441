package dto

// UpdateProfileRequest payload for self-service profile updates. Only these
// fields are mutable through the profile route.
type UpdateProfileRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// ChangePasswordRequest payload for password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
