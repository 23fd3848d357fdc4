package telegram

import "github.com/aliskhannn/bruno/internal/domain/entities"

// iconEmoji renders unit icons in chat, indexed by entities.Icon.
var iconEmoji = [...]string{
	entities.IconBookOpen: "📖",
	entities.IconSparkles: "✨",
	entities.IconUsers:    "👥",
	entities.IconGlobe:    "🌍",
	entities.IconHome:     "🏠",
	entities.IconHeart:    "❤️",
}

// Fails to compile when an icon has no emoji.
var _ = [1]struct{}{}[len(iconEmoji)-entities.NumIcons]

// emoji returns the chat glyph of an icon, falling back to the book.
func emoji(i entities.Icon) string {
	if i < 0 || int(i) >= len(iconEmoji) || iconEmoji[i] == "" {
		return iconEmoji[entities.IconBookOpen]
	}
	return iconEmoji[i]
}

var lessonStatusMark = map[entities.LessonStatus]string{
	entities.StatusCompleted: "✅",
	entities.StatusAvailable: "▶️",
	entities.StatusLocked:    "🔒",
}

var lessonTypeEmoji = map[entities.LessonType]string{
	entities.TypeLesson:     "📘",
	entities.TypeDialog:     "💬",
	entities.TypeDrill:      "🏋️",
	entities.TypeReview:     "🔁",
	entities.TypeCheckpoint: "🏁",
}
