package types

import (
	"fmt"
	"time"
)

// ValidateOwnerID checks the owner identifier is present.
func ValidateOwnerID(ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerId is required")
	}
	return nil
}

// ValidateDate checks an ISO calendar date ("2006-01-02"). Empty is allowed:
// it selects the flat list instead of a date bucket.
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return nil
}

// ValidateKey checks both halves of a collection key.
func ValidateKey(key CollectionKey) error {
	if err := ValidateOwnerID(key.OwnerID); err != nil {
		return err
	}
	return ValidateDate(key.Date)
}
