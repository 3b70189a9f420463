package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// OpenInMemory opens and migrates a private in-memory sqlite database. Handles
// opened with the same name share data.
func OpenInMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	db, err := Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		Close(db)
		return nil, err
	}
	return db, nil
}
