package domain

import (
	"fmt"
	"path/filepath"
)

// ItemLogPath returns the path to an item's log file.
func ItemLogPath(dataDir string, itemID int) string {
	return filepath.Join(dataDir, "logs", fmt.Sprintf("item-%d.log", itemID))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "tracker.log")
}

// ItemRef formats an item reference for display, e.g. "epic #3".
func ItemRef(item Item) string {
	switch item.Kind() {
	case KindEpic:
		return fmt.Sprintf("epic #%d", item.ItemID())
	case KindSubtask:
		return fmt.Sprintf("subtask #%d", item.ItemID())
	default:
		return fmt.Sprintf("task #%d", item.ItemID())
	}
}
