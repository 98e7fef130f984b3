package redis

const (
	// KeyPrefixReminder is the prefix for reminder keys
	KeyPrefixReminder = "mural:reminder:"
	// KeyPrefixCategory is the prefix for category keys
	KeyPrefixCategory = "mural:category:"
	// KeyAllReminders is the key for the set of all reminder IDs
	KeyAllReminders = "mural:reminders:all"
	// KeyAllCategories is the key for the set of all category IDs
	KeyAllCategories = "mural:categories:all"
	// KeyBoardOrder is the key for the board's display order
	KeyBoardOrder = "mural:board:order"
	// KeyBoardName is the key for the project name
	KeyBoardName = "mural:board:name"
)

// ReminderKey returns the Redis key for a reminder by ID
func ReminderKey(id string) string {
	return KeyPrefixReminder + id
}

// CategoryKey returns the Redis key for a category by ID
func CategoryKey(id string) string {
	return KeyPrefixCategory + id
}
