package db

import "strings"

// Studio is a cached directory entry for a tattoo studio.
type Studio struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"index" json:"name"` // Indexed for faster queries
	City        string `gorm:"index" json:"city"`
	Styles      string `json:"styles"` // comma-separated
	Rating      float64
	ReviewCount int
	Verified    bool
}

// Artist is a cached directory entry for an artist.
type Artist struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"index" json:"name"`
	StudioID string `gorm:"index" json:"studio_id"`
	Styles   string `json:"styles"` // comma-separated
	Rating   float64
}

// JoinStyles flattens a style list for storage.
func JoinStyles(styles []string) string {
	return strings.Join(styles, ",")
}

// SplitStyles restores a stored style list.
func SplitStyles(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
