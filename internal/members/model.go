package members

// Member is one persisted leveling record: the values a rank card is
// rendered from, plus the avatar reference.
type Member struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Level     uint   `json:"level"`
	CurrentXP uint   `json:"current_xp"`
	MaxXP     uint   `json:"max_xp"`
	AvatarURL string `json:"avatar_url"`
}
