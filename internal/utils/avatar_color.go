package utils

import "hash/fnv"

// avatarPalette matches the colors the frontend renders for member chips.
var avatarPalette = []string{
	"#ef4444", "#f97316", "#f59e0b", "#84cc16",
	"#10b981", "#06b6d4", "#3b82f6", "#8b5cf6",
	"#d946ef", "#f43f5e",
}

// PickAvatarColor deterministically assigns a palette color to a name.
func PickAvatarColor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return avatarPalette[h.Sum32()%uint32(len(avatarPalette))]
}
