package models

// ValidOwner reports whether s is one of the two permitted owners.
func ValidOwner(s string) bool {
	return s == OwnerA || s == OwnerB
}

// ValidStatus reports whether s is one of the three board columns.
func ValidStatus(s string) bool {
	return s == StatusBacklog || s == StatusInProgress || s == StatusDone
}
